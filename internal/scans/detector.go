package scans

import (
	"math/rand"
	"sync"
	"time"

	"github.com/corneye/corneye-backend/pkg/config"
)

// HealthyLabel is the detector class for leaves with no disease.
const HealthyLabel = "Healthy"

// Detection is a single classifier outcome.
type Detection struct {
	Label      string
	Confidence float64
}

// Detector produces leaf classifications. The current implementation is the
// placeholder model: it draws from a fixed outcome set until the real
// classifier is integrated.
type Detector interface {
	Detect(imageRef string) Detection
}

// cannedOutcomes mirrors the result set the scan screen ships with.
var cannedOutcomes = []Detection{
	{Label: "Northern Leaf Blight", Confidence: 0.92},
	{Label: "Common Rust", Confidence: 0.87},
	{Label: "Gray Leaf Spot", Confidence: 0.85},
	{Label: HealthyLabel, Confidence: 0.95},
}

type stubDetector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDetector builds the placeholder detector. A non-zero seed makes the
// outcome sequence reproducible for tests and demos.
func NewDetector(cfg config.ScanConfig) Detector {
	seed := cfg.DetectorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &stubDetector{rng: rand.New(rand.NewSource(seed))}
}

func (d *stubDetector) Detect(string) Detection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cannedOutcomes[d.rng.Intn(len(cannedOutcomes))]
}

// Outcomes exposes the canned outcome set for validation and tests.
func Outcomes() []Detection {
	out := make([]Detection, len(cannedOutcomes))
	copy(out, cannedOutcomes)
	return out
}
