package dishes

import (
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
)

// DishDTO exposes dish data in API responses.
type DishDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description,omitempty"`
	EstimatedTimeMinutes *int      `json:"estimated_time_minutes,omitempty"`
	CreatedBy            uuid.UUID `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DishIngredientDTO exposes one ingredient link joined with its name.
type DishIngredientDTO struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	QuantityType string    `json:"quantity_type"`
}

// DishStepDTO exposes one step link joined with its name, ordered by position.
type DishStepDTO struct {
	StepID     uuid.UUID `json:"step_id"`
	Name       string    `json:"name"`
	StepNumber int       `json:"step_number"`
}

// CreateDishDTO holds creation-time data for a new dish.
type CreateDishDTO struct {
	Name                 string
	Description          *string
	EstimatedTimeMinutes *int
	CreatedBy            uuid.UUID
}

// ToModel maps the DTO into a persistable dish row.
func (d CreateDishDTO) ToModel() *models.Dish {
	return &models.Dish{
		ID:                   uuid.New(),
		Name:                 d.Name,
		Description:          d.Description,
		EstimatedTimeMinutes: d.EstimatedTimeMinutes,
		CreatedBy:            d.CreatedBy,
	}
}

// UpdateDishInput captures the mutable dish fields.
type UpdateDishInput struct {
	Name                 *string
	Description          *string
	EstimatedTimeMinutes *int
}

// FromModel maps the persisted dish into a DTO.
func FromModel(m *models.Dish) *DishDTO {
	if m == nil {
		return nil
	}
	return &DishDTO{
		ID:                   m.ID,
		Name:                 m.Name,
		Description:          m.Description,
		EstimatedTimeMinutes: m.EstimatedTimeMinutes,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// FromModels maps a slice of persisted dishes into DTOs.
func FromModels(ms []models.Dish) []DishDTO {
	dtos := make([]DishDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
