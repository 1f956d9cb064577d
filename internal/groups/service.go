package groups

import (
	"context"
	"errors"
	"fmt"

	"github.com/FamilyDinnerTime/backend/pkg/db"
	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type groupsRepository interface {
	Create(ctx context.Context, dto CreateGroupDTO) (*models.UserGroup, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.UserGroup, error)
	Update(ctx context.Context, group *models.UserGroup) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByName(ctx context.Context, name string) ([]models.UserGroup, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]models.UserGroup, error)
	FindByMember(ctx context.Context, userID uuid.UUID) ([]models.UserGroup, error)
	GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*models.GroupMembership, error)
	AddMembership(ctx context.Context, groupID, userID uuid.UUID, isEditor bool) (*models.GroupMembership, error)
	DeleteMembership(ctx context.Context, groupID, userID uuid.UUID) (int64, error)
	UpdateMembershipRole(ctx context.Context, groupID, userID uuid.UUID, isEditor bool) (int64, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]MemberDTO, error)
}

// Service exposes group and membership operations.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, name string, description *string) (*GroupDTO, error)
	Update(ctx context.Context, requesterID, groupID uuid.UUID, input UpdateGroupInput) (*GroupDTO, error)
	Delete(ctx context.Context, requesterID, groupID uuid.UUID) error
	AddMember(ctx context.Context, requesterID, groupID, targetUserID uuid.UUID, isEditor bool) error
	RemoveMember(ctx context.Context, requesterID, groupID, targetUserID uuid.UUID) error
	UpdateMemberRole(ctx context.Context, requesterID, groupID, targetUserID uuid.UUID, isEditor bool) error
	ListMembers(ctx context.Context, requesterID, groupID uuid.UUID) ([]MemberDTO, error)
	GetMemberRole(ctx context.Context, requesterID, groupID uuid.UUID) (bool, error)
	FindByName(ctx context.Context, name string) ([]GroupDTO, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]GroupDTO, error)
	FindByMember(ctx context.Context, userID uuid.UUID) ([]GroupDTO, error)
}

type service struct {
	repo groupsRepository
}

// NewService builds a groups service with the provided repository.
func NewService(repo groupsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("groups repository required")
	}
	return &service{repo: repo}, nil
}

// Create inserts a group owned by the requester. The creator is not
// auto-inserted as a membership row; membership must be added explicitly.
func (s *service) Create(ctx context.Context, requesterID uuid.UUID, name string, description *string) (*GroupDTO, error) {
	group, err := s.repo.Create(ctx, CreateGroupDTO{
		Name:        name,
		Description: description,
		CreatedBy:   requesterID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create group")
	}
	return FromModel(group), nil
}

func (s *service) Update(ctx context.Context, requesterID, groupID uuid.UUID, input UpdateGroupInput) (*GroupDTO, error) {
	group, err := s.fetchGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.canManage(ctx, group, requesterID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the creator or an editor may update the group")
	}

	if input.Name != nil {
		group.Name = *input.Name
	}
	if input.Description != nil {
		group.Description = input.Description
	}
	if err := s.repo.Update(ctx, group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update group")
	}
	return FromModel(group), nil
}

func (s *service) Delete(ctx context.Context, requesterID, groupID uuid.UUID) error {
	group, err := s.fetchGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != requesterID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator may delete the group")
	}
	if _, err := s.repo.Delete(ctx, groupID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete group")
	}
	return nil
}

// AddMember inserts a membership. The existence pre-check gives a precise
// error; the composite unique constraint is the authoritative duplicate guard.
func (s *service) AddMember(ctx context.Context, requesterID, groupID, targetUserID uuid.UUID, isEditor bool) error {
	group, err := s.fetchGroup(ctx, groupID)
	if err != nil {
		return err
	}
	allowed, err := s.canManage(ctx, group, requesterID)
	if err != nil {
		return err
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator or an editor may manage members")
	}

	if _, err := s.repo.GetMembership(ctx, groupID, targetUserID); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "user already in group")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup membership")
	}

	if _, err := s.repo.AddMembership(ctx, groupID, targetUserID, isEditor); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "user already in group")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add membership")
	}
	return nil
}

func (s *service) RemoveMember(ctx context.Context, requesterID, groupID, targetUserID uuid.UUID) error {
	group, err := s.fetchGroup(ctx, groupID)
	if err != nil {
		return err
	}
	allowed, err := s.canManage(ctx, group, requesterID)
	if err != nil {
		return err
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator or an editor may manage members")
	}

	rows, err := s.repo.DeleteMembership(ctx, groupID, targetUserID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove membership")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not in group")
	}
	return nil
}

func (s *service) UpdateMemberRole(ctx context.Context, requesterID, groupID, targetUserID uuid.UUID, isEditor bool) error {
	group, err := s.fetchGroup(ctx, groupID)
	if err != nil {
		return err
	}
	allowed, err := s.canManage(ctx, group, requesterID)
	if err != nil {
		return err
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the creator or an editor may manage members")
	}

	rows, err := s.repo.UpdateMembershipRole(ctx, groupID, targetUserID, isEditor)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update membership role")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not in group")
	}
	return nil
}

// ListMembers is restricted to users who themselves hold a membership row.
// A creator without a membership row is excluded.
func (s *service) ListMembers(ctx context.Context, requesterID, groupID uuid.UUID) ([]MemberDTO, error) {
	if _, err := s.fetchGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetMembership(ctx, groupID, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only members may list the group")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup membership")
	}

	members, err := s.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}
	return members, nil
}

// GetMemberRole reports whether the requester holds the editor role in the
// group. Only members may read their own role.
func (s *service) GetMemberRole(ctx context.Context, requesterID, groupID uuid.UUID) (bool, error) {
	if _, err := s.fetchGroup(ctx, groupID); err != nil {
		return false, err
	}
	membership, err := s.repo.GetMembership(ctx, groupID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeForbidden, "user not in group")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup membership")
	}
	return membership.IsEditor, nil
}

func (s *service) FindByName(ctx context.Context, name string) ([]GroupDTO, error) {
	groups, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find groups by name")
	}
	return FromModels(groups), nil
}

func (s *service) FindByCreator(ctx context.Context, userID uuid.UUID) ([]GroupDTO, error) {
	groups, err := s.repo.FindByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find groups by creator")
	}
	return FromModels(groups), nil
}

func (s *service) FindByMember(ctx context.Context, userID uuid.UUID) ([]GroupDTO, error) {
	groups, err := s.repo.FindByMember(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find groups by member")
	}
	return FromModels(groups), nil
}

func (s *service) fetchGroup(ctx context.Context, groupID uuid.UUID) (*models.UserGroup, error) {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup group")
	}
	return group, nil
}

func (s *service) canManage(ctx context.Context, group *models.UserGroup, requesterID uuid.UUID) (bool, error) {
	if group.CreatedBy == requesterID {
		return true, nil
	}
	membership, err := s.repo.GetMembership(ctx, group.ID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup membership")
	}
	return membership.IsEditor, nil
}
