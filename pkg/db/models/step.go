package models

import (
	"time"

	"github.com/google/uuid"
)

// Step is a global preparation step. Deletion is blocked while any dish
// references it.
type Step struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name                 string    `gorm:"column:name;type:text;not null"`
	Description          *string   `gorm:"column:description"`
	EstimatedTimeMinutes *int      `gorm:"column:estimated_time_minutes"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
