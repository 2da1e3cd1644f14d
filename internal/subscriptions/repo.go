package subscriptions

import (
	"context"

	"github.com/corneye/corneye-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for plans and mock payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	FindPlan(ctx context.Context, planID string) (*models.SubscriptionPlan, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	LatestPayment(ctx context.Context, farmerID uuid.UUID) (*models.Payment, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a subscriptions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repositoryImpl) FindPlan(ctx context.Context, planID string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", planID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repositoryImpl) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repositoryImpl) LatestPayment(ctx context.Context, farmerID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, id DESC").
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
