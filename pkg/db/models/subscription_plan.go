package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SubscriptionPlan captures one seeded plan from the subscription screen.
// Prices are monthly PHP amounts.
type SubscriptionPlan struct {
	ID        string          `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Features  pq.StringArray  `gorm:"column:features;type:text[]"`
	Badge     *string         `gorm:"column:badge"`
	SortOrder int             `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
