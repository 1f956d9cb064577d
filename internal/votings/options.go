package votings

import (
	"context"
	"errors"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type optionsRepository interface {
	FindOptionByID(ctx context.Context, id uuid.UUID) (*models.VotingOption, error)
	DeleteOptionByID(ctx context.Context, id uuid.UUID) (int64, error)
	ListOptions(ctx context.Context, votingID uuid.UUID) ([]models.VotingOption, error)
}

// OptionsService exposes direct voting option access. Delete performs no
// creator check of its own; the admin route surface restricts who may call
// it.
type OptionsService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OptionDTO, error)
	ListByVoting(ctx context.Context, votingID uuid.UUID) ([]OptionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type optionsService struct {
	repo optionsRepository
}

// NewOptionsService builds the standalone voting options service.
func NewOptionsService(repo optionsRepository) (OptionsService, error) {
	if repo == nil {
		return nil, fmt.Errorf("options repository required")
	}
	return &optionsService{repo: repo}, nil
}

func (s *optionsService) FindByID(ctx context.Context, id uuid.UUID) (*OptionDTO, error) {
	option, err := s.repo.FindOptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voting option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup voting option")
	}
	return OptionFromModel(option), nil
}

func (s *optionsService) ListByVoting(ctx context.Context, votingID uuid.UUID) ([]OptionDTO, error) {
	options, err := s.repo.ListOptions(ctx, votingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list voting options")
	}
	return OptionsFromModels(options), nil
}

func (s *optionsService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.DeleteOptionByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete voting option")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "voting option not found")
	}
	return nil
}
