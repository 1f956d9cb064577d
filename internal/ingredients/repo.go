package ingredients

import (
	"context"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles ingredient persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to ingredient operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new ingredient row.
func (r *Repository) Create(ctx context.Context, dto CreateIngredientDTO) (*models.Ingredient, error) {
	ingredient := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// FindByID loads an ingredient by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Update saves the provided ingredient.
func (r *Repository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("ingredient is required")
	}
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Delete removes an ingredient row and returns the affected-row count.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Ingredient{})
	return result.RowsAffected, result.Error
}

// FindByName returns ingredients whose name contains the fragment, case-insensitive.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// List returns all ingredients.
func (r *Repository) List(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
