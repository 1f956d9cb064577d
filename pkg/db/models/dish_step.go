package models

import (
	"time"

	"github.com/google/uuid"
)

// DishStep links a dish with a step at a position in the procedure.
// Re-adding the same pair updates the position instead of duplicating.
type DishStep struct {
	DishID     uuid.UUID `gorm:"column:dish_id;type:uuid;primaryKey;uniqueIndex:uq_dish_steps_dish_step"`
	StepID     uuid.UUID `gorm:"column:step_id;type:uuid;primaryKey;uniqueIndex:uq_dish_steps_dish_step"`
	StepNumber int       `gorm:"column:step_number;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DishStep) TableName() string {
	return "dish_steps"
}
