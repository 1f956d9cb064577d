package groups

import (
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
)

// GroupDTO exposes group data in API responses.
type GroupDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MemberDTO exposes one group membership joined with its user identity.
type MemberDTO struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsEditor bool      `json:"is_editor"`
	JoinedAt time.Time `json:"joined_at"`
}

// CreateGroupDTO holds creation-time data for a new group.
type CreateGroupDTO struct {
	Name        string
	Description *string
	CreatedBy   uuid.UUID
}

// ToModel maps the DTO into a persistable group row.
func (d CreateGroupDTO) ToModel() *models.UserGroup {
	return &models.UserGroup{
		ID:          uuid.New(),
		Name:        d.Name,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
	}
}

// UpdateGroupInput captures the mutable group fields.
type UpdateGroupInput struct {
	Name        *string
	Description *string
}

// FromModel maps the persisted group into a DTO.
func FromModel(m *models.UserGroup) *GroupDTO {
	if m == nil {
		return nil
	}
	return &GroupDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromModels maps a slice of persisted groups into DTOs.
func FromModels(ms []models.UserGroup) []GroupDTO {
	dtos := make([]GroupDTO, 0, len(ms))
	for i := range ms {
		dtos = append(dtos, *FromModel(&ms[i]))
	}
	return dtos
}
