package votings

import (
	"context"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// visibilityPredicate selects votings created by the user or by anyone
// sharing at least one group with the user. The visibility is
// membership-based, not scoped to a single group.
const visibilityPredicate = `menu_votings.created_by = ? OR EXISTS (
	SELECT 1 FROM group_memberships me
	JOIN group_memberships creator ON creator.group_id = me.group_id
	WHERE me.user_id = ? AND creator.user_id = menu_votings.created_by
)`

// Repository handles menu voting and voting option persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to voting operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new voting row.
func (r *Repository) Create(ctx context.Context, dto CreateVotingDTO) (*models.MenuVoting, error) {
	voting := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(voting).Error; err != nil {
		return nil, err
	}
	return voting, nil
}

// FindByID loads a voting by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuVoting, error) {
	var voting models.MenuVoting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&voting).Error; err != nil {
		return nil, err
	}
	return &voting, nil
}

// Update saves the provided voting.
func (r *Repository) Update(ctx context.Context, voting *models.MenuVoting) error {
	if voting == nil {
		return fmt.Errorf("voting is required")
	}
	return r.db.WithContext(ctx).Save(voting).Error
}

// Delete removes a voting row and returns the affected-row count.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuVoting{})
	return result.RowsAffected, result.Error
}

// FindVisible returns the votings visible to the user, newest first.
func (r *Repository) FindVisible(ctx context.Context, userID uuid.UUID) ([]models.MenuVoting, error) {
	var votings []models.MenuVoting
	if err := r.db.WithContext(ctx).
		Where(visibilityPredicate, userID, userID).
		Order("created_at DESC").
		Find(&votings).Error; err != nil {
		return nil, err
	}
	return votings, nil
}

// FindByCreator returns the votings created by the user, newest first.
func (r *Repository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]models.MenuVoting, error) {
	var votings []models.MenuVoting
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&votings).Error; err != nil {
		return nil, err
	}
	return votings, nil
}

// FindVisibleByName filters the visible votings by a case-insensitive name fragment.
func (r *Repository) FindVisibleByName(ctx context.Context, name string, userID uuid.UUID) ([]models.MenuVoting, error) {
	var votings []models.MenuVoting
	if err := r.db.WithContext(ctx).
		Where(visibilityPredicate, userID, userID).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&votings).Error; err != nil {
		return nil, err
	}
	return votings, nil
}

// GetOption loads one option by its composite business key.
func (r *Repository) GetOption(ctx context.Context, votingID, dishID uuid.UUID) (*models.VotingOption, error) {
	var option models.VotingOption
	if err := r.db.WithContext(ctx).
		Where("menu_id = ? AND dish_id = ?", votingID, dishID).
		First(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// AddOption inserts an option row. A duplicate pair is silently ignored at
// this layer; the service rejects duplicates before calling it.
func (r *Repository) AddOption(ctx context.Context, votingID, dishID uuid.UUID) (*models.VotingOption, error) {
	option := &models.VotingOption{
		ID:     uuid.New(),
		MenuID: votingID,
		DishID: dishID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "menu_id"}, {Name: "dish_id"}},
			DoNothing: true,
		}).
		Create(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// DeleteOption removes the option by its composite business key.
func (r *Repository) DeleteOption(ctx context.Context, votingID, dishID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("menu_id = ? AND dish_id = ?", votingID, dishID).
		Delete(&models.VotingOption{})
	return result.RowsAffected, result.Error
}

// ListOptions returns all options keyed by the voting id.
func (r *Repository) ListOptions(ctx context.Context, votingID uuid.UUID) ([]models.VotingOption, error) {
	var options []models.VotingOption
	if err := r.db.WithContext(ctx).
		Where("menu_id = ?", votingID).
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// FindOptionByID loads one option row by its id.
func (r *Repository) FindOptionByID(ctx context.Context, id uuid.UUID) (*models.VotingOption, error) {
	var option models.VotingOption
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// DeleteOptionByID removes one option row by its id.
func (r *Repository) DeleteOptionByID(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.VotingOption{})
	return result.RowsAffected, result.Error
}
