package models

import (
	"time"

	"github.com/google/uuid"
)

// Dish is a recipe owned exclusively by its creator.
type Dish struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name                 string    `gorm:"column:name;type:text;not null"`
	Description          *string   `gorm:"column:description"`
	EstimatedTimeMinutes *int      `gorm:"column:estimated_time_minutes"`
	CreatedBy            uuid.UUID `gorm:"column:created_by;type:uuid;not null;index"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
