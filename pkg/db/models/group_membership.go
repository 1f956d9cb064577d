package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupMembership links a user with a group. Editors may manage the member
// list and update the group, but only the creator may delete it.
type GroupMembership struct {
	GroupID   uuid.UUID `gorm:"column:group_id;type:uuid;primaryKey;uniqueIndex:uq_group_memberships_group_user"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;uniqueIndex:uq_group_memberships_group_user"`
	IsEditor  bool      `gorm:"column:is_editor;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}
