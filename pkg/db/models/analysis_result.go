package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisResult records one scan outcome in the analysis_results collection.
// Confidence is the detector's score in [0,1]; Healthy mirrors whether the
// detected label is the healthy class so history filters stay cheap.
type AnalysisResult struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FarmerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	DiseaseName string    `gorm:"column:disease_name;not null"`
	Confidence  float64   `gorm:"column:confidence;not null"`
	Healthy     bool      `gorm:"column:healthy;not null"`
	ImageRef    *string   `gorm:"column:image_ref"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (a *AnalysisResult) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
