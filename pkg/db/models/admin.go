package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is one record in the admins collection backing the web dashboard login.
type Admin struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName     string     `gorm:"column:full_name;not null"`
	Email        string     `gorm:"type:text;not null;uniqueIndex:admins_email_key"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
