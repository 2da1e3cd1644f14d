package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/corneye/corneye-backend/internal/farmers"
	"github.com/corneye/corneye-backend/pkg/db"
	"github.com/corneye/corneye-backend/pkg/db/models"
	pkgerrors "github.com/corneye/corneye-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service loads and saves the farmer's editable profile fields.
type Service interface {
	Load(ctx context.Context, farmerID uuid.UUID) (*farmers.FarmerDTO, error)
	Save(ctx context.Context, farmerID uuid.UUID, req SaveRequest) (*farmers.FarmerDTO, error)
}

// SaveRequest carries a partial profile update. Nil fields are left
// untouched; saving the same values twice is a no-op.
type SaveRequest struct {
	FullName     *string `json:"fullname,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=10"`
	FarmLocation *string `json:"farm_location,omitempty"`
	FarmArea     *string `json:"farm_area,omitempty"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
}

type farmerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Farmer, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
}

type service struct {
	farmers farmerRepository
}

// NewService wires the profile dependencies.
func NewService(repo farmerRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "farmers repository required")
	}
	return &service{farmers: repo}, nil
}

// Load fetches the profile for display. A missing record renders as an empty
// profile rather than an error, matching how the profile screen treats an
// account that has never saved details.
func (s *service) Load(ctx context.Context, farmerID uuid.UUID) (*farmers.FarmerDTO, error) {
	if farmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	farmer, err := s.farmers.FindByID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &farmers.FarmerDTO{ID: farmerID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return farmers.FromModel(farmer), nil
}

// Save applies the provided fields to an existing account. Unknown accounts
// are rejected; profile saves never create records.
func (s *service) Save(ctx context.Context, farmerID uuid.UUID, req SaveRequest) (*farmers.FarmerDTO, error) {
	if farmerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "farmer id required")
	}

	updates := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fullname cannot be blank")
		}
		updates["full_name"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be blank")
		}
		if !strings.Contains(email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email address is invalid")
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if len(phone) < 10 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone must be at least 10 digits")
		}
		updates["phone"] = phone
	}
	if req.FarmLocation != nil {
		updates["farm_location"] = strings.TrimSpace(*req.FarmLocation)
	}
	if req.FarmArea != nil {
		updates["farm_area"] = strings.TrimSpace(*req.FarmArea)
	}
	if req.ProfilePhoto != nil {
		updates["profile_photo"] = strings.TrimSpace(*req.ProfilePhoto)
	}

	found, err := s.farmers.UpdateProfile(ctx, farmerID, updates)
	if err != nil {
		if db.IsUniqueViolation(err, "farmers_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "farmer not found")
	}

	farmer, err := s.farmers.FindByID(ctx, farmerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile")
	}
	return farmers.FromModel(farmer), nil
}
