package models

import (
	"time"

	"github.com/FamilyDinnerTime/backend/pkg/enums"
	"github.com/google/uuid"
)

// Role is static reference data granted to users through user_roles.
type Role struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name        enums.RoleName `gorm:"column:name;type:text;not null;uniqueIndex:uq_roles_name"`
	Description *string        `gorm:"column:description"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}
