package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/corneye/corneye-backend/api/responses"
	"github.com/corneye/corneye-backend/api/validators"
	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/corneye/corneye-backend/internal/notifications"
	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/corneye/corneye-backend/pkg/logger"
	"github.com/corneye/corneye-backend/pkg/pagination"
	"gorm.io/gorm"
)

// farmerDirectory is the slice of the farmers repository the admin surface needs.
type farmerDirectory interface {
	List(ctx context.Context, params farmers.ListParams) ([]models.Farmer, *pagination.Cursor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Farmer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FarmerStatus) (bool, error)
}

// sessionRevoker lets the admin surface kick a deactivated farmer.
type sessionRevoker interface {
	Revoke(ctx context.Context, accountID uuid.UUID) error
}

type farmerListResponse struct {
	Items  []farmers.FarmerDTO `json:"items"`
	Cursor string              `json:"cursor"`
}

type farmerStatusRequest struct {
	Status enums.FarmerStatus `json:"status" validate:"required"`
}

// AdminFarmerList returns the paginated farmer directory with optional search
// and status filters.
func AdminFarmerList(repo farmerDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "farmer directory unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := farmers.ListParams{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Limit:  limit,
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.FarmerStatus(strings.ToLower(raw))
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			params.Status = &status
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("cursor")); raw != "" {
			cursor, err := pagination.ParseCursor(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
				return
			}
			params.Cursor = cursor
		}

		rows, next, err := repo.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list farmers"))
			return
		}

		resp := farmerListResponse{Items: make([]farmers.FarmerDTO, 0, len(rows))}
		for i := range rows {
			resp.Items = append(resp.Items, *farmers.FromModel(&rows[i]))
		}
		if next != nil {
			resp.Cursor = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, resp)
	}
}

// AdminFarmerDetail returns one farmer account.
func AdminFarmerDetail(repo farmerDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "farmer directory unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "farmerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid farmer id"))
			return
		}

		farmer, err := repo.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "farmer not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load farmer"))
			return
		}
		responses.WriteSuccess(w, farmers.FromModel(farmer))
	}
}

// AdminFarmerSetStatus activates or deactivates a farmer account. Deactivation
// also revokes the farmer's live session so the change takes effect on the
// next request, not the next login.
func AdminFarmerSetStatus(repo farmerDirectory, sessions sessionRevoker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "farmer directory unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "farmerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid farmer id"))
			return
		}

		var body farmerStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !body.Status.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
			return
		}

		found, err := repo.UpdateStatus(r.Context(), id, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status"))
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "farmer not found"))
			return
		}

		if body.Status == enums.FarmerStatusInactive && sessions != nil {
			if err := sessions.Revoke(r.Context(), id); err != nil && logg != nil {
				logg.Error(logg.WithField(r.Context(), "farmer_id", id.String()), "revoke session after deactivate", err)
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": string(body.Status)})
	}
}

// AdminBroadcast publishes an announcement visible to every farmer.
func AdminBroadcast(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		var body notifications.BroadcastRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notification, err := svc.Broadcast(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, notification)
	}
}
