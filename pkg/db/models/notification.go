package models

import (
	"time"

	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification stores in-app notification payloads scoped to farmers.
// A nil FarmerID marks a broadcast visible to every farmer.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	FarmerID  *uuid.UUID             `gorm:"type:uuid;index"`
	Type      enums.NotificationType `gorm:"type:text;not null"`
	Title     string                 `gorm:"type:text;not null"`
	Message   string                 `gorm:"type:text;not null"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
