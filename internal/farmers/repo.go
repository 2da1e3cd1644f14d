package farmers

import (
	"context"
	"strings"
	"time"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/corneye/corneye-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes farmer-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a farmers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListParams filters and paginates the admin-facing farmer directory.
type ListParams struct {
	Search string
	Status *enums.FarmerStatus
	Limit  int
	Cursor *pagination.Cursor
}

// Create inserts a new farmer and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateFarmerDTO) (*models.Farmer, error) {
	farmer := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(farmer).Error; err != nil {
		return nil, err
	}
	return farmer, nil
}

// FindByEmail retrieves the farmer matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&farmer).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

// FindByID loads a farmer by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.WithContext(ctx).First(&farmer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

// UpdateLastLogin refreshes the farmer's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Farmer{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdateProfile applies the provided column updates to an existing farmer and
// reports whether the row existed. Saving the same values twice leaves the row
// unchanged apart from updated_at.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	if len(updates) == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Farmer{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.Farmer{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Updates matching current values can report zero rows on some drivers;
	// fall back to an existence check before declaring the farmer missing.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Farmer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus flips the account status and reports whether the row existed.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.FarmerStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Farmer{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Farmer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of farmers ordered newest-first for the admin directory.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.Farmer, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Farmer{})
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Farmer
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}
