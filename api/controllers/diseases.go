package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/corneye/corneye-backend/api/responses"
	"github.com/corneye/corneye-backend/internal/diseases"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/logger"
)

// DiseaseList returns the full reference catalog.
func DiseaseList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, diseases.List())
	}
}

// DiseaseDetail looks up one catalog entry by name. The name arrives
// percent-encoded in the path ("Northern%20Leaf%20Blight").
func DiseaseDetail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(chi.URLParam(r, "name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid disease name"))
			return
		}

		disease, err := diseases.Get(name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, disease)
	}
}
