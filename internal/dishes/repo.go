package dishes

import (
	"context"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles dish persistence and its ingredient/step links.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to dish operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new dish row.
func (r *Repository) Create(ctx context.Context, dto CreateDishDTO) (*models.Dish, error) {
	dish := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

// FindByID loads a dish by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// Update saves the provided dish.
func (r *Repository) Update(ctx context.Context, dish *models.Dish) error {
	if dish == nil {
		return fmt.Errorf("dish is required")
	}
	return r.db.WithContext(ctx).Save(dish).Error
}

// Delete removes a dish row and returns the affected-row count.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Dish{})
	return result.RowsAffected, result.Error
}

// FindByName returns dishes whose name contains the fragment, case-insensitive.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindByCreator returns all dishes created by the provided user.
func (r *Repository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// UpsertIngredient inserts the ingredient link or updates quantity and unit
// when the pair already exists.
func (r *Repository) UpsertIngredient(ctx context.Context, dishID, ingredientID uuid.UUID, quantity int, quantityType string) error {
	link := models.DishIngredient{
		DishID:       dishID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		QuantityType: quantityType,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dish_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "quantity_type", "updated_at"}),
		}).
		Create(&link).Error
}

// DeleteIngredient removes the ingredient link and returns the affected-row count.
func (r *Repository) DeleteIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("dish_id = ? AND ingredient_id = ?", dishID, ingredientID).
		Delete(&models.DishIngredient{})
	return result.RowsAffected, result.Error
}

// ListIngredients returns the dish's ingredient links joined with names.
func (r *Repository) ListIngredients(ctx context.Context, dishID uuid.UUID) ([]DishIngredientDTO, error) {
	var out []DishIngredientDTO
	if err := r.db.WithContext(ctx).
		Table("dish_ingredients di").
		Select("di.ingredient_id AS ingredient_id, i.name AS name, di.quantity AS quantity, di.quantity_type AS quantity_type").
		Joins("JOIN ingredients i ON i.id = di.ingredient_id").
		Where("di.dish_id = ?", dishID).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertStep inserts the step link or updates its position when the pair
// already exists.
func (r *Repository) UpsertStep(ctx context.Context, dishID, stepID uuid.UUID, stepNumber int) error {
	link := models.DishStep{
		DishID:     dishID,
		StepID:     stepID,
		StepNumber: stepNumber,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dish_id"}, {Name: "step_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"step_number", "updated_at"}),
		}).
		Create(&link).Error
}

// DeleteStep removes the step link and returns the affected-row count.
func (r *Repository) DeleteStep(ctx context.Context, dishID, stepID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("dish_id = ? AND step_id = ?", dishID, stepID).
		Delete(&models.DishStep{})
	return result.RowsAffected, result.Error
}

// ListSteps returns the dish's step links joined with names, ordered by position.
func (r *Repository) ListSteps(ctx context.Context, dishID uuid.UUID) ([]DishStepDTO, error) {
	var out []DishStepDTO
	if err := r.db.WithContext(ctx).
		Table("dish_steps ds").
		Select("ds.step_id AS step_id, s.name AS name, ds.step_number AS step_number").
		Joins("JOIN steps s ON s.id = ds.step_id").
		Where("ds.dish_id = ?", dishID).
		Order("ds.step_number ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
