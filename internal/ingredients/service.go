package ingredients

import (
	"context"
	"errors"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ingredientsRepository interface {
	Create(ctx context.Context, dto CreateIngredientDTO) (*models.Ingredient, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByName(ctx context.Context, name string) ([]models.Ingredient, error)
	List(ctx context.Context) ([]models.Ingredient, error)
}

// Service exposes ingredient operations. The admin-only restriction on
// mutations is enforced at the API boundary, not here.
type Service interface {
	Create(ctx context.Context, name string, description *string) (*IngredientDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*IngredientDTO, error)
	FindByName(ctx context.Context, name string) ([]IngredientDTO, error)
	List(ctx context.Context) ([]IngredientDTO, error)
}

type service struct {
	repo ingredientsRepository
}

// NewService builds an ingredients service with the provided repository.
func NewService(repo ingredientsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ingredients repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, name string, description *string) (*IngredientDTO, error) {
	ingredient, err := s.repo.Create(ctx, CreateIngredientDTO{Name: name, Description: description})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ingredient")
	}
	return FromModel(ingredient), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error) {
	ingredient, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		ingredient.Name = *input.Name
	}
	if input.Description != nil {
		ingredient.Description = input.Description
	}
	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ingredient")
	}
	return FromModel(ingredient), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ingredient")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
	}
	return nil
}

func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*IngredientDTO, error) {
	ingredient, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(ingredient), nil
}

func (s *service) FindByName(ctx context.Context, name string) ([]IngredientDTO, error) {
	ingredients, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find ingredients by name")
	}
	return FromModels(ingredients), nil
}

func (s *service) List(ctx context.Context) ([]IngredientDTO, error) {
	ingredients, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ingredients")
	}
	return FromModels(ingredients), nil
}

func (s *service) fetch(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup ingredient")
	}
	return ingredient, nil
}
