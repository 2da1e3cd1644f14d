package scans

import (
	"context"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/corneye/corneye-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for analysis results.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, result *models.AnalysisResult) error
	List(ctx context.Context, params listResultsParams) ([]models.AnalysisResult, *pagination.Cursor, error)
	FindByID(ctx context.Context, farmerID, resultID uuid.UUID) (*models.AnalysisResult, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a scans repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listResultsParams struct {
	FarmerID uuid.UUID
	Limit    int
	Cursor   *pagination.Cursor
	Healthy  *bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, result *models.AnalysisResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listResultsParams) ([]models.AnalysisResult, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.AnalysisResult{}).
		Where("farmer_id = ?", params.FarmerID)
	if params.Healthy != nil {
		query = query.Where("healthy = ?", *params.Healthy)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.AnalysisResult
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

func (r *repositoryImpl) FindByID(ctx context.Context, farmerID, resultID uuid.UUID) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := r.db.WithContext(ctx).
		First(&result, "id = ? AND farmer_id = ?", resultID, farmerID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
