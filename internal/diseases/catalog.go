package diseases

import (
	"strings"

	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
)

// Disease is one entry in the static corn disease reference.
type Disease struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	RiskLevel        string   `json:"risk_level"`
	ShortDescription string   `json:"short_description"`
	FullDescription  string   `json:"full_description"`
	Recommendations  []string `json:"recommendations"`
}

var defaultRecommendations = []string{
	"Continue regular monitoring of your crops",
	"Maintain proper irrigation practices",
}

// catalog is the built-in reference content shown on the disease screens.
// It ships with the binary; there is no admin editing surface for it.
var catalog = []Disease{
	{
		Name:             "Northern Leaf Blight",
		Type:             "Fungal",
		RiskLevel:        "High Risk",
		ShortDescription: "Long gray-green elliptical lesions on leaves, rapid spread",
		FullDescription: "Northern Leaf Blight, also known as Turcicum Leaf Blight, is a devastating fungal disease that primarily affects corn plants. It manifests as long, narrow tan or grayish-green elliptical lesions on leaves, which can rapidly expand under favorable conditions.\n\n" +
			"The disease thrives in humid environments and can cause severe defoliation, significantly reducing crop yield and quality.",
		Recommendations: []string{
			"Apply foliar fungicides such as azoxystrobin or pyraclostrobin",
			"Practice crop rotation with non-host crops",
			"Remove and destroy infected plant debris",
			"Use resistant corn hybrids for future planting",
		},
	},
	{
		Name:             "Common Leaf Rust",
		Type:             "Fungal",
		RiskLevel:        "Medium Risk",
		ShortDescription: "Orange-brown pustules scattered on leaf surfaces",
		FullDescription: "Common Rust is a widespread fungal disease affecting corn crops worldwide. It appears as small, circular to elongated pustules that are cinnamon-brown to orange-brown in color.\n\n" +
			"These pustules break through the leaf surface and release masses of powdery spores. While generally not as severe as other leaf diseases, heavy infections can significantly reduce photosynthetic capacity and yield.",
		Recommendations: []string{
			"Apply fungicides at first sign of pustules",
			"Plant early to avoid peak rust conditions",
			"Choose rust-resistant corn varieties",
			"Monitor fields weekly during humid weather",
		},
	},
	{
		Name:             "Gray Leaf Spot",
		Type:             "Fungal",
		RiskLevel:        "Medium Risk",
		ShortDescription: "Rectangular gray spots parallel to leaf veins",
		FullDescription: "Gray Leaf Spot is a serious foliar disease of corn characterized by distinctive rectangular gray to tan lesions that develop parallel to the leaf veins.\n\n" +
			"This fungal pathogen can cause extensive defoliation in susceptible hybrids, particularly under prolonged periods of high humidity and warm temperatures. The disease has become increasingly problematic in continuous corn production systems.",
		Recommendations: []string{
			"Apply strobilurin-based fungicides preventively",
			"Improve air circulation by adjusting plant spacing",
			"Rotate with soybeans or other non-host crops",
			"Avoid overhead irrigation when possible",
		},
	},
	{
		Name:             "Bacterial Leaf Streak",
		Type:             "Bacterial",
		RiskLevel:        "Low Risk",
		ShortDescription: "Long narrow orange streaks between leaf veins",
		FullDescription: "Bacterial Leaf Streak is an emerging bacterial disease of corn that produces long, narrow orange to brown streaks on the leaves. The disease is spread by wind-driven rain and can develop rapidly during periods of warm, wet weather.\n\n" +
			"While typically not as devastating as fungal leaf diseases, it can reduce photosynthetic area and overall plant health in susceptible hybrids.",
		Recommendations: defaultRecommendations,
	},
	{
		Name:             "Southern Leaf Blight",
		Type:             "Fungal",
		RiskLevel:        "High Risk",
		ShortDescription: "Large tan lesions with dark borders on leaves",
		FullDescription: "Southern Leaf Blight is a highly destructive fungal disease that can cause severe yield losses in susceptible corn hybrids. The disease produces large tan to brown lesions with distinct dark reddish-brown borders.\n\n" +
			"It spreads rapidly during warm, humid weather and can quickly defoliate entire fields. The disease gained notoriety during the 1970 corn blight epidemic.",
		Recommendations: defaultRecommendations,
	},
}

// List returns every catalog entry in display order.
func List() []Disease {
	out := make([]Disease, len(catalog))
	copy(out, catalog)
	return out
}

// aliases maps detector labels to their catalog names.
var aliases = map[string]string{
	"common rust": "common leaf rust",
}

// Get finds a catalog entry by name. Matching is case-insensitive and ignores
// surrounding whitespace; the caller is expected to have percent-decoded the
// name already.
func Get(name string) (*Disease, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "disease name required")
	}
	if canonical, ok := aliases[needle]; ok {
		needle = canonical
	}
	for i := range catalog {
		if strings.ToLower(catalog[i].Name) == needle {
			entry := catalog[i]
			return &entry, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "disease not found")
}

// Recommendations returns treatment guidance for the named disease, falling
// back to the generic monitoring advice for names outside the catalog (the
// healthy result uses this path).
func Recommendations(name string) []string {
	if entry, err := Get(name); err == nil {
		out := make([]string, len(entry.Recommendations))
		copy(out, entry.Recommendations)
		return out
	}
	out := make([]string, len(defaultRecommendations))
	copy(out, defaultRecommendations)
	return out
}
