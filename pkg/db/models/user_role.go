package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole links a user with a granted role.
type UserRole struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	RoleID    uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
