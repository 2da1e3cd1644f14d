package farmers

import (
	"time"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/google/uuid"
)

// FarmerDTO is the transport shape that omits sensitive credentials.
type FarmerDTO struct {
	ID           uuid.UUID          `json:"id"`
	FullName     string             `json:"fullname"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	FarmLocation string             `json:"farm_location"`
	FarmArea     string             `json:"farm_area"`
	ProfilePhoto *string            `json:"profile_photo,omitempty"`
	Status       enums.FarmerStatus `json:"status"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CreateFarmerDTO holds the data required by the repo to persist a new farmer.
type CreateFarmerDTO struct {
	FullName     string
	Email        string
	PasswordHash string
	Phone        string
	FarmLocation string
	FarmArea     string
	Status       *enums.FarmerStatus
}

func FromModel(f *models.Farmer) *FarmerDTO {
	if f == nil {
		return nil
	}

	return &FarmerDTO{
		ID:           f.ID,
		FullName:     f.FullName,
		Email:        f.Email,
		Phone:        f.Phone,
		FarmLocation: f.FarmLocation,
		FarmArea:     f.FarmArea,
		ProfilePhoto: f.ProfilePhoto,
		Status:       f.Status,
		LastLoginAt:  f.LastLoginAt,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (c CreateFarmerDTO) ToModel() *models.Farmer {
	status := enums.FarmerStatusActive
	if c.Status != nil {
		status = *c.Status
	}

	return &models.Farmer{
		FullName:     c.FullName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Phone:        c.Phone,
		FarmLocation: c.FarmLocation,
		FarmArea:     c.FarmArea,
		Status:       status,
	}
}
