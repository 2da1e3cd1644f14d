package controllers

import (
	"net/http"

	"github.com/corneye/corneye-backend/api/middleware"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/google/uuid"
)

// accountID pulls the authenticated account out of the request context.
func accountID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.AccountIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid account id")
	}
	return id, nil
}
