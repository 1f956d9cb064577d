package votings

import (
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
)

// VotingDTO exposes menu voting data in API responses.
type VotingDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OptionDTO exposes one candidate dish inside a voting.
type OptionDTO struct {
	ID        uuid.UUID `json:"id"`
	MenuID    uuid.UUID `json:"menu_id"`
	DishID    uuid.UUID `json:"dish_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVotingDTO holds creation-time data for a new voting.
type CreateVotingDTO struct {
	Name      string
	CreatedBy uuid.UUID
}

// ToModel maps the DTO into a persistable voting row.
func (d CreateVotingDTO) ToModel() *models.MenuVoting {
	return &models.MenuVoting{
		ID:        uuid.New(),
		Name:      d.Name,
		CreatedBy: d.CreatedBy,
	}
}

// FromModel maps the persisted voting into a DTO.
func FromModel(m *models.MenuVoting) *VotingDTO {
	if m == nil {
		return nil
	}
	return &VotingDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of persisted votings into DTOs.
func FromModels(ms []models.MenuVoting) []VotingDTO {
	dtos := make([]VotingDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}

// OptionFromModel maps the persisted option into a DTO.
func OptionFromModel(m *models.VotingOption) *OptionDTO {
	if m == nil {
		return nil
	}
	return &OptionDTO{
		ID:        m.ID,
		MenuID:    m.MenuID,
		DishID:    m.DishID,
		CreatedAt: m.CreatedAt,
	}
}

// OptionsFromModels maps a slice of persisted options into DTOs.
func OptionsFromModels(ms []models.VotingOption) []OptionDTO {
	dtos := make([]OptionDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *OptionFromModel(&ms[i]))
	}
	return dtos
}
