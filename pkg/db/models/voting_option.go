package models

import (
	"time"

	"github.com/google/uuid"
)

// VotingOption is a candidate dish inside a menu voting.
type VotingOption struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	MenuID    uuid.UUID `gorm:"column:menu_id;type:uuid;not null;uniqueIndex:uq_voting_options_voting_dish"`
	DishID    uuid.UUID `gorm:"column:dish_id;type:uuid;not null;uniqueIndex:uq_voting_options_voting_dish"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VotingOption) TableName() string {
	return "voting_options"
}
