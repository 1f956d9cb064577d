package steps

import (
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
)

// StepDTO exposes preparation step data in API responses.
type StepDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description,omitempty"`
	EstimatedTimeMinutes *int      `json:"estimated_time_minutes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateStepDTO holds creation-time data for a new step.
type CreateStepDTO struct {
	Name                 string
	Description          *string
	EstimatedTimeMinutes *int
}

// ToModel maps the DTO into a persistable step row.
func (d CreateStepDTO) ToModel() *models.Step {
	return &models.Step{
		ID:                   uuid.New(),
		Name:                 d.Name,
		Description:          d.Description,
		EstimatedTimeMinutes: d.EstimatedTimeMinutes,
	}
}

// UpdateStepInput captures the mutable step fields.
type UpdateStepInput struct {
	Name                 *string
	Description          *string
	EstimatedTimeMinutes *int
}

// FromModel maps the persisted step into a DTO.
func FromModel(m *models.Step) *StepDTO {
	if m == nil {
		return nil
	}
	return &StepDTO{
		ID:                   m.ID,
		Name:                 m.Name,
		Description:          m.Description,
		EstimatedTimeMinutes: m.EstimatedTimeMinutes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// FromModels maps a slice of persisted steps into DTOs.
func FromModels(ms []models.Step) []StepDTO {
	dtos := make([]StepDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
