package models

import (
	"time"

	"github.com/google/uuid"
)

// DishIngredient links a dish with an ingredient and its quantity.
// Re-adding the same pair updates quantity and unit instead of duplicating.
type DishIngredient struct {
	DishID       uuid.UUID `gorm:"column:dish_id;type:uuid;primaryKey;uniqueIndex:uq_dish_ingredients_dish_ingredient"`
	IngredientID uuid.UUID `gorm:"column:ingredient_id;type:uuid;primaryKey;uniqueIndex:uq_dish_ingredients_dish_ingredient"`
	Quantity     int       `gorm:"column:quantity;not null"`
	QuantityType string    `gorm:"column:quantity_type;type:text;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DishIngredient) TableName() string {
	return "dish_ingredients"
}
