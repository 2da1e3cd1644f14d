package models

import (
	"time"

	"github.com/corneye/corneye-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Farmer is one record in the farmers collection. The key is generated
// server-side at creation and never changes; email is intended-unique and
// enforced with a database unique index.
type Farmer struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	FullName     string             `gorm:"column:full_name;not null"`
	Email        string             `gorm:"type:text;not null;uniqueIndex:farmers_email_key"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Phone        string             `gorm:"column:phone;not null"`
	FarmLocation string             `gorm:"column:farm_location;not null;default:''"`
	FarmArea     string             `gorm:"column:farm_area;not null;default:''"`
	ProfilePhoto *string            `gorm:"column:profile_photo"`
	Status       enums.FarmerStatus `gorm:"column:status;not null;default:active"`
	LastLoginAt  *time.Time         `gorm:"column:last_login_at"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the generated key so both Postgres and sqlite agree
// on who mints identifiers.
func (f *Farmer) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
