package dishes

import (
	"context"
	"errors"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dishesRepository interface {
	Create(ctx context.Context, dto CreateDishDTO) (*models.Dish, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByName(ctx context.Context, name string) ([]models.Dish, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]models.Dish, error)
	UpsertIngredient(ctx context.Context, dishID, ingredientID uuid.UUID, quantity int, quantityType string) error
	DeleteIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) (int64, error)
	ListIngredients(ctx context.Context, dishID uuid.UUID) ([]DishIngredientDTO, error)
	UpsertStep(ctx context.Context, dishID, stepID uuid.UUID, stepNumber int) error
	DeleteStep(ctx context.Context, dishID, stepID uuid.UUID) (int64, error)
	ListSteps(ctx context.Context, dishID uuid.UUID) ([]DishStepDTO, error)
}

// Service exposes dish operations. Mutations are restricted to the dish
// creator; there is no group or editor delegation for dishes.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, name string, description *string, estimatedTime *int) (*DishDTO, error)
	Update(ctx context.Context, requesterID, dishID uuid.UUID, input UpdateDishInput) (*DishDTO, error)
	Delete(ctx context.Context, requesterID, dishID uuid.UUID) error
	FindByID(ctx context.Context, dishID uuid.UUID) (*DishDTO, error)
	FindByName(ctx context.Context, name string) ([]DishDTO, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]DishDTO, error)
	AddIngredient(ctx context.Context, requesterID, dishID, ingredientID uuid.UUID, quantity int, quantityType string) error
	RemoveIngredient(ctx context.Context, requesterID, dishID, ingredientID uuid.UUID) error
	ListIngredients(ctx context.Context, dishID uuid.UUID) ([]DishIngredientDTO, error)
	AddStep(ctx context.Context, requesterID, dishID, stepID uuid.UUID, stepNumber int) error
	RemoveStep(ctx context.Context, requesterID, dishID, stepID uuid.UUID) error
	ListSteps(ctx context.Context, dishID uuid.UUID) ([]DishStepDTO, error)
}

type service struct {
	repo dishesRepository
}

// NewService builds a dishes service with the provided repository.
func NewService(repo dishesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dishes repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, name string, description *string, estimatedTime *int) (*DishDTO, error) {
	dish, err := s.repo.Create(ctx, CreateDishDTO{
		Name:                 name,
		Description:          description,
		EstimatedTimeMinutes: estimatedTime,
		CreatedBy:            requesterID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dish")
	}
	return FromModel(dish), nil
}

func (s *service) Update(ctx context.Context, requesterID, dishID uuid.UUID, input UpdateDishInput) (*DishDTO, error) {
	dish, err := s.fetchOwnedDish(ctx, dishID, requesterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		dish.Name = *input.Name
	}
	if input.Description != nil {
		dish.Description = input.Description
	}
	if input.EstimatedTimeMinutes != nil {
		dish.EstimatedTimeMinutes = input.EstimatedTimeMinutes
	}
	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update dish")
	}
	return FromModel(dish), nil
}

func (s *service) Delete(ctx context.Context, requesterID, dishID uuid.UUID) error {
	if _, err := s.fetchOwnedDish(ctx, dishID, requesterID); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, dishID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete dish")
	}
	return nil
}

func (s *service) FindByID(ctx context.Context, dishID uuid.UUID) (*DishDTO, error) {
	dish, err := s.fetchDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	return FromModel(dish), nil
}

func (s *service) FindByName(ctx context.Context, name string) ([]DishDTO, error) {
	dishes, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find dishes by name")
	}
	return FromModels(dishes), nil
}

func (s *service) FindByCreator(ctx context.Context, userID uuid.UUID) ([]DishDTO, error) {
	dishes, err := s.repo.FindByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find dishes by creator")
	}
	return FromModels(dishes), nil
}

// AddIngredient upserts the link. Re-adding the same pair updates quantity
// and unit instead of erroring.
func (s *service) AddIngredient(ctx context.Context, requesterID, dishID, ingredientID uuid.UUID, quantity int, quantityType string) error {
	if _, err := s.fetchOwnedDish(ctx, dishID, requesterID); err != nil {
		return err
	}
	if err := s.repo.UpsertIngredient(ctx, dishID, ingredientID, quantity, quantityType); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert dish ingredient")
	}
	return nil
}

func (s *service) RemoveIngredient(ctx context.Context, requesterID, dishID, ingredientID uuid.UUID) error {
	if _, err := s.fetchOwnedDish(ctx, dishID, requesterID); err != nil {
		return err
	}
	rows, err := s.repo.DeleteIngredient(ctx, dishID, ingredientID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete dish ingredient")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not linked to dish")
	}
	return nil
}

func (s *service) ListIngredients(ctx context.Context, dishID uuid.UUID) ([]DishIngredientDTO, error) {
	if _, err := s.fetchDish(ctx, dishID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListIngredients(ctx, dishID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dish ingredients")
	}
	return out, nil
}

// AddStep upserts the link. Re-adding the same pair updates the position
// instead of erroring.
func (s *service) AddStep(ctx context.Context, requesterID, dishID, stepID uuid.UUID, stepNumber int) error {
	if _, err := s.fetchOwnedDish(ctx, dishID, requesterID); err != nil {
		return err
	}
	if err := s.repo.UpsertStep(ctx, dishID, stepID, stepNumber); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert dish step")
	}
	return nil
}

func (s *service) RemoveStep(ctx context.Context, requesterID, dishID, stepID uuid.UUID) error {
	if _, err := s.fetchOwnedDish(ctx, dishID, requesterID); err != nil {
		return err
	}
	rows, err := s.repo.DeleteStep(ctx, dishID, stepID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete dish step")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "step not linked to dish")
	}
	return nil
}

func (s *service) ListSteps(ctx context.Context, dishID uuid.UUID) ([]DishStepDTO, error) {
	if _, err := s.fetchDish(ctx, dishID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListSteps(ctx, dishID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dish steps")
	}
	return out, nil
}

func (s *service) fetchDish(ctx context.Context, dishID uuid.UUID) (*models.Dish, error) {
	dish, err := s.repo.FindByID(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup dish")
	}
	return dish, nil
}

func (s *service) fetchOwnedDish(ctx context.Context, dishID, requesterID uuid.UUID) (*models.Dish, error) {
	dish, err := s.fetchDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish.CreatedBy != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator may modify the dish")
	}
	return dish, nil
}
