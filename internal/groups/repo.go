package groups

import (
	"context"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles group and membership persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to group operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new group row.
func (r *Repository) Create(ctx context.Context, dto CreateGroupDTO) (*models.UserGroup, error) {
	group := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// FindByID loads a group by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.UserGroup, error) {
	var group models.UserGroup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Update saves the provided group.
func (r *Repository) Update(ctx context.Context, group *models.UserGroup) error {
	if group == nil {
		return fmt.Errorf("group is required")
	}
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete removes a group row and returns the affected-row count.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UserGroup{})
	return result.RowsAffected, result.Error
}

// FindByName returns groups whose name contains the fragment, case-insensitive.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// FindByCreator returns all groups created by the provided user.
func (r *Repository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// FindByMember returns all groups the provided user is a member of.
func (r *Repository) FindByMember(ctx context.Context, userID uuid.UUID) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	if err := r.db.WithContext(ctx).
		Joins("JOIN group_memberships gm ON gm.group_id = user_groups.id").
		Where("gm.user_id = ?", userID).
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetMembership loads one membership row by its composite key.
func (r *Repository) GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*models.GroupMembership, error) {
	var membership models.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// AddMembership inserts a membership row. The composite unique constraint
// rejects duplicates.
func (r *Repository) AddMembership(ctx context.Context, groupID, userID uuid.UUID, isEditor bool) (*models.GroupMembership, error) {
	membership := &models.GroupMembership{
		GroupID:  groupID,
		UserID:   userID,
		IsEditor: isEditor,
	}
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// DeleteMembership removes a membership row and returns the affected-row count.
func (r *Repository) DeleteMembership(ctx context.Context, groupID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMembership{})
	return result.RowsAffected, result.Error
}

// UpdateMembershipRole flips the is-editor flag and returns the affected-row count.
func (r *Repository) UpdateMembershipRole(ctx context.Context, groupID, userID uuid.UUID, isEditor bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("is_editor", isEditor)
	return result.RowsAffected, result.Error
}

// ListMembers returns the group's memberships joined with user identity.
func (r *Repository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]MemberDTO, error) {
	var members []MemberDTO
	if err := r.db.WithContext(ctx).
		Table("group_memberships gm").
		Select("gm.user_id AS user_id, u.username AS username, u.email AS email, gm.is_editor AS is_editor, gm.created_at AS joined_at").
		Joins("JOIN users u ON u.id = gm.user_id").
		Where("gm.group_id = ?", groupID).
		Scan(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
