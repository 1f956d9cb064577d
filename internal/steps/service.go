package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stepsRepository interface {
	Create(ctx context.Context, dto CreateStepDTO) (*models.Step, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Step, error)
	Update(ctx context.Context, step *models.Step) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByName(ctx context.Context, name string) ([]models.Step, error)
	List(ctx context.Context) ([]models.Step, error)
	CountDishLinks(ctx context.Context, stepID uuid.UUID) (int64, error)
}

// Service exposes preparation step operations.
type Service interface {
	Create(ctx context.Context, name string, description *string, estimatedTime *int) (*StepDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStepInput) (*StepDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*StepDTO, error)
	FindByName(ctx context.Context, name string) ([]StepDTO, error)
	List(ctx context.Context) ([]StepDTO, error)
}

type service struct {
	repo stepsRepository
}

// NewService builds a steps service with the provided repository.
func NewService(repo stepsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("steps repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, name string, description *string, estimatedTime *int) (*StepDTO, error) {
	step, err := s.repo.Create(ctx, CreateStepDTO{
		Name:                 name,
		Description:          description,
		EstimatedTimeMinutes: estimatedTime,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create step")
	}
	return FromModel(step), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateStepInput) (*StepDTO, error) {
	step, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		step.Name = *input.Name
	}
	if input.Description != nil {
		step.Description = input.Description
	}
	if input.EstimatedTimeMinutes != nil {
		step.EstimatedTimeMinutes = input.EstimatedTimeMinutes
	}
	if err := s.repo.Update(ctx, step); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update step")
	}
	return FromModel(step), nil
}

// Delete rejects with an in-use error while any dish references the step.
// The in-use check runs before the existence check.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	links, err := s.repo.CountDishLinks(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count step links")
	}
	if links > 0 {
		return pkgerrors.New(pkgerrors.CodeInUse, "step is referenced by a dish")
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete step")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "step not found")
	}
	return nil
}

func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*StepDTO, error) {
	step, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(step), nil
}

func (s *service) FindByName(ctx context.Context, name string) ([]StepDTO, error) {
	steps, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find steps by name")
	}
	return FromModels(steps), nil
}

func (s *service) List(ctx context.Context) ([]StepDTO, error) {
	steps, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list steps")
	}
	return FromModels(steps), nil
}

func (s *service) fetch(ctx context.Context, id uuid.UUID) (*models.Step, error) {
	step, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "step not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup step")
	}
	return step, nil
}
