package ingredients

import (
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
)

// IngredientDTO exposes ingredient reference data in API responses.
type IngredientDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateIngredientDTO holds creation-time data for a new ingredient.
type CreateIngredientDTO struct {
	Name        string
	Description *string
}

// ToModel maps the DTO into a persistable ingredient row.
func (d CreateIngredientDTO) ToModel() *models.Ingredient {
	return &models.Ingredient{
		ID:          uuid.New(),
		Name:        d.Name,
		Description: d.Description,
	}
}

// UpdateIngredientInput captures the mutable ingredient fields.
type UpdateIngredientInput struct {
	Name        *string
	Description *string
}

// FromModel maps the persisted ingredient into a DTO.
func FromModel(m *models.Ingredient) *IngredientDTO {
	if m == nil {
		return nil
	}
	return &IngredientDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromModels maps a slice of persisted ingredients into DTOs.
func FromModels(ms []models.Ingredient) []IngredientDTO {
	dtos := make([]IngredientDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
