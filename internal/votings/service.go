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

type votingsRepository interface {
	Create(ctx context.Context, dto CreateVotingDTO) (*models.MenuVoting, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuVoting, error)
	Update(ctx context.Context, voting *models.MenuVoting) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindVisible(ctx context.Context, userID uuid.UUID) ([]models.MenuVoting, error)
	FindVisibleByName(ctx context.Context, name string, userID uuid.UUID) ([]models.MenuVoting, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]models.MenuVoting, error)
	GetOption(ctx context.Context, votingID, dishID uuid.UUID) (*models.VotingOption, error)
	AddOption(ctx context.Context, votingID, dishID uuid.UUID) (*models.VotingOption, error)
	DeleteOption(ctx context.Context, votingID, dishID uuid.UUID) (int64, error)
	ListOptions(ctx context.Context, votingID uuid.UUID) ([]models.VotingOption, error)
}

// Service exposes menu voting operations.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, name string) (*VotingDTO, error)
	Update(ctx context.Context, requesterID, votingID uuid.UUID, name string) (*VotingDTO, error)
	Delete(ctx context.Context, requesterID, votingID uuid.UUID) error
	FindByID(ctx context.Context, votingID uuid.UUID) (*VotingDTO, error)
	FindVisible(ctx context.Context, userID uuid.UUID) ([]VotingDTO, error)
	FindVisibleByName(ctx context.Context, name string, userID uuid.UUID) ([]VotingDTO, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]VotingDTO, error)
	AddDish(ctx context.Context, requesterID, votingID, dishID uuid.UUID) error
	RemoveDish(ctx context.Context, requesterID, votingID, dishID uuid.UUID) error
	ListOptions(ctx context.Context, votingID uuid.UUID) ([]OptionDTO, error)
}

type service struct {
	repo votingsRepository
}

// NewService builds a votings service with the provided repository.
func NewService(repo votingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("votings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, name string) (*VotingDTO, error) {
	voting, err := s.repo.Create(ctx, CreateVotingDTO{Name: name, CreatedBy: requesterID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create voting")
	}
	return FromModel(voting), nil
}

func (s *service) Update(ctx context.Context, requesterID, votingID uuid.UUID, name string) (*VotingDTO, error) {
	voting, err := s.fetchOwnedVoting(ctx, votingID, requesterID)
	if err != nil {
		return nil, err
	}
	voting.Name = name
	if err := s.repo.Update(ctx, voting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update voting")
	}
	return FromModel(voting), nil
}

func (s *service) Delete(ctx context.Context, requesterID, votingID uuid.UUID) error {
	if _, err := s.fetchOwnedVoting(ctx, votingID, requesterID); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, votingID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete voting")
	}
	return nil
}

func (s *service) FindByID(ctx context.Context, votingID uuid.UUID) (*VotingDTO, error) {
	voting, err := s.fetchVoting(ctx, votingID)
	if err != nil {
		return nil, err
	}
	return FromModel(voting), nil
}

func (s *service) FindVisible(ctx context.Context, userID uuid.UUID) ([]VotingDTO, error) {
	votings, err := s.repo.FindVisible(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find visible votings")
	}
	return FromModels(votings), nil
}

func (s *service) FindVisibleByName(ctx context.Context, name string, userID uuid.UUID) ([]VotingDTO, error) {
	votings, err := s.repo.FindVisibleByName(ctx, name, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find visible votings by name")
	}
	return FromModels(votings), nil
}

func (s *service) FindByCreator(ctx context.Context, userID uuid.UUID) ([]VotingDTO, error) {
	votings, err := s.repo.FindByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find votings by creator")
	}
	return FromModels(votings), nil
}

// AddDish rejects a duplicate pair explicitly. The store-level insert
// silently ignores duplicates, so skipping this check would turn a
// duplicate add into a no-op instead of a conflict.
func (s *service) AddDish(ctx context.Context, requesterID, votingID, dishID uuid.UUID) error {
	if _, err := s.fetchOwnedVoting(ctx, votingID, requesterID); err != nil {
		return err
	}

	if _, err := s.repo.GetOption(ctx, votingID, dishID); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "dish already in voting")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup voting option")
	}

	if _, err := s.repo.AddOption(ctx, votingID, dishID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add voting option")
	}
	return nil
}

func (s *service) RemoveDish(ctx context.Context, requesterID, votingID, dishID uuid.UUID) error {
	if _, err := s.fetchOwnedVoting(ctx, votingID, requesterID); err != nil {
		return err
	}
	rows, err := s.repo.DeleteOption(ctx, votingID, dishID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove voting option")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "dish not in voting")
	}
	return nil
}

// ListOptions is an open read with no membership check.
func (s *service) ListOptions(ctx context.Context, votingID uuid.UUID) ([]OptionDTO, error) {
	if _, err := s.fetchVoting(ctx, votingID); err != nil {
		return nil, err
	}
	options, err := s.repo.ListOptions(ctx, votingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list voting options")
	}
	return OptionsFromModels(options), nil
}

func (s *service) fetchVoting(ctx context.Context, votingID uuid.UUID) (*models.MenuVoting, error) {
	voting, err := s.repo.FindByID(ctx, votingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup voting")
	}
	return voting, nil
}

func (s *service) fetchOwnedVoting(ctx context.Context, votingID, requesterID uuid.UUID) (*models.MenuVoting, error) {
	voting, err := s.fetchVoting(ctx, votingID)
	if err != nil {
		return nil, err
	}
	if voting.CreatedBy != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator may modify the voting")
	}
	return voting, nil
}
