package admins

import (
	"time"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/google/uuid"
)

// AdminDTO is the transport shape that omits sensitive credentials.
type AdminDTO struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"fullname"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromModel(a *models.Admin) *AdminDTO {
	if a == nil {
		return nil
	}

	return &AdminDTO{
		ID:          a.ID,
		FullName:    a.FullName,
		Email:       a.Email,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
