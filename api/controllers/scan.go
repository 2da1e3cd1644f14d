package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/corneye/corneye-backend/api/responses"
	"github.com/corneye/corneye-backend/api/validators"
	"github.com/corneye/corneye-backend/internal/scans"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/logger"
	"github.com/corneye/corneye-backend/pkg/pagination"
)

type scanRequest struct {
	ImageRef string `json:"image_ref"`
}

// ScanAnalyze runs the leaf analysis and stores the result.
func ScanAnalyze(svc scans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scan service unavailable"))
			return
		}

		id, err := accountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body scanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Analyze(r.Context(), scans.AnalyzeRequest{
			FarmerID: id,
			ImageRef: body.ImageRef,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ScanHistory returns the caller's paginated scan results.
func ScanHistory(svc scans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scan service unavailable"))
			return
		}

		id, err := accountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := scans.HistoryParams{
			FarmerID: id,
			Limit:    limit,
			Cursor:   strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if healthy, set, err := validators.ParseQueryBool(r, "healthy"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if set {
			params.Healthy = &healthy
		}

		result, err := svc.History(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ScanDetail returns one of the caller's stored results.
func ScanDetail(svc scans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scan service unavailable"))
			return
		}

		id, err := accountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resultID, err := uuid.Parse(chi.URLParam(r, "resultId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid result id"))
			return
		}

		result, err := svc.Get(r.Context(), id, resultID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
