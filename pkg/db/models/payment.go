package models

import (
	"time"

	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment records a mock subscription purchase. No gateway is involved;
// the row is the whole payment.
type Payment struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey"`
	FarmerID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	PlanID    string              `gorm:"column:plan_id;not null"`
	PlanName  string              `gorm:"column:plan_name;not null"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Method    enums.PaymentMethod `gorm:"column:method;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
