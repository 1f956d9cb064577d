package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuVoting is a named vote over candidate dishes. It is visible to its
// creator and to anyone sharing at least one group with the creator.
type MenuVoting struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
