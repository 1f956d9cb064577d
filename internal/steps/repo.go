package steps

import (
	"context"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles step persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to step operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new step row.
func (r *Repository) Create(ctx context.Context, dto CreateStepDTO) (*models.Step, error) {
	step := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(step).Error; err != nil {
		return nil, err
	}
	return step, nil
}

// FindByID loads a step by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Step, error) {
	var step models.Step
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&step).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

// Update saves the provided step.
func (r *Repository) Update(ctx context.Context, step *models.Step) error {
	if step == nil {
		return fmt.Errorf("step is required")
	}
	return r.db.WithContext(ctx).Save(step).Error
}

// Delete removes a step row and returns the affected-row count.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Step{})
	return result.RowsAffected, result.Error
}

// FindByName returns steps whose name contains the fragment, case-insensitive.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.Step, error) {
	var steps []models.Step
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// List returns all steps.
func (r *Repository) List(ctx context.Context) ([]models.Step, error) {
	var steps []models.Step
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// CountDishLinks returns how many dishes reference the step.
func (r *Repository) CountDishLinks(ctx context.Context, stepID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DishStep{}).
		Where("step_id = ?", stepID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
