package groups

import (
	"context"
	"testing"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type membershipKey struct {
	groupID uuid.UUID
	userID  uuid.UUID
}

type stubGroupsRepo struct {
	groups      map[uuid.UUID]*models.UserGroup
	memberships map[membershipKey]*models.GroupMembership
	err         error
}

func newStubGroupsRepo() *stubGroupsRepo {
	return &stubGroupsRepo{
		groups:      map[uuid.UUID]*models.UserGroup{},
		memberships: map[membershipKey]*models.GroupMembership{},
	}
}

func (s *stubGroupsRepo) Create(_ context.Context, dto CreateGroupDTO) (*models.UserGroup, error) {
	if s.err != nil {
		return nil, s.err
	}
	group := dto.ToModel()
	s.groups[group.ID] = group
	return group, nil
}

func (s *stubGroupsRepo) FindByID(_ context.Context, id uuid.UUID) (*models.UserGroup, error) {
	if s.err != nil {
		return nil, s.err
	}
	if group, ok := s.groups[id]; ok {
		return group, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupsRepo) Update(_ context.Context, group *models.UserGroup) error {
	s.groups[group.ID] = group
	return nil
}

func (s *stubGroupsRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.groups[id]; !ok {
		return 0, nil
	}
	delete(s.groups, id)
	return 1, nil
}

func (s *stubGroupsRepo) FindByName(_ context.Context, _ string) ([]models.UserGroup, error) {
	var out []models.UserGroup
	for _, g := range s.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (s *stubGroupsRepo) FindByCreator(_ context.Context, userID uuid.UUID) ([]models.UserGroup, error) {
	var out []models.UserGroup
	for _, g := range s.groups {
		if g.CreatedBy == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *stubGroupsRepo) FindByMember(_ context.Context, userID uuid.UUID) ([]models.UserGroup, error) {
	var out []models.UserGroup
	for key := range s.memberships {
		if key.userID == userID {
			if g, ok := s.groups[key.groupID]; ok {
				out = append(out, *g)
			}
		}
	}
	return out, nil
}

func (s *stubGroupsRepo) GetMembership(_ context.Context, groupID, userID uuid.UUID) (*models.GroupMembership, error) {
	if m, ok := s.memberships[membershipKey{groupID, userID}]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupsRepo) AddMembership(_ context.Context, groupID, userID uuid.UUID, isEditor bool) (*models.GroupMembership, error) {
	m := &models.GroupMembership{GroupID: groupID, UserID: userID, IsEditor: isEditor}
	s.memberships[membershipKey{groupID, userID}] = m
	return m, nil
}

func (s *stubGroupsRepo) DeleteMembership(_ context.Context, groupID, userID uuid.UUID) (int64, error) {
	key := membershipKey{groupID, userID}
	if _, ok := s.memberships[key]; !ok {
		return 0, nil
	}
	delete(s.memberships, key)
	return 1, nil
}

func (s *stubGroupsRepo) UpdateMembershipRole(_ context.Context, groupID, userID uuid.UUID, isEditor bool) (int64, error) {
	key := membershipKey{groupID, userID}
	m, ok := s.memberships[key]
	if !ok {
		return 0, nil
	}
	m.IsEditor = isEditor
	return 1, nil
}

func (s *stubGroupsRepo) ListMembers(_ context.Context, groupID uuid.UUID) ([]MemberDTO, error) {
	var out []MemberDTO
	for key, m := range s.memberships {
		if key.groupID == groupID {
			out = append(out, MemberDTO{UserID: m.UserID, IsEditor: m.IsEditor})
		}
	}
	return out, nil
}

func newGroupsService(t *testing.T, repo *stubGroupsRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedGroup(repo *stubGroupsRepo, creator uuid.UUID) *models.UserGroup {
	group := &models.UserGroup{ID: uuid.New(), Name: "dinner club", CreatedBy: creator}
	repo.groups[group.ID] = group
	return group
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCreateDoesNotInsertCreatorMembership(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()

	dto, err := svc.Create(context.Background(), creator, "dinner club", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.CreatedBy != creator {
		t.Fatalf("expected creator %s, got %s", creator, dto.CreatedBy)
	}
	if len(repo.memberships) != 0 {
		t.Fatal("creator must not be auto-inserted as a member")
	}
}

func TestUpdateAllowsCreatorAndEditorOnly(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	editor := uuid.New()
	member := uuid.New()
	group := seedGroup(repo, creator)
	repo.memberships[membershipKey{group.ID, editor}] = &models.GroupMembership{GroupID: group.ID, UserID: editor, IsEditor: true}
	repo.memberships[membershipKey{group.ID, member}] = &models.GroupMembership{GroupID: group.ID, UserID: member}

	name := "renamed"
	if _, err := svc.Update(context.Background(), creator, group.ID, UpdateGroupInput{Name: &name}); err != nil {
		t.Fatalf("creator update: %v", err)
	}
	if _, err := svc.Update(context.Background(), editor, group.ID, UpdateGroupInput{Name: &name}); err != nil {
		t.Fatalf("editor update: %v", err)
	}
	_, err := svc.Update(context.Background(), member, group.ID, UpdateGroupInput{Name: &name})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateMissingGroup(t *testing.T) {
	svc := newGroupsService(t, newStubGroupsRepo())
	name := "renamed"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateGroupInput{Name: &name})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteCreatorOnly(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	editor := uuid.New()
	group := seedGroup(repo, creator)
	repo.memberships[membershipKey{group.ID, editor}] = &models.GroupMembership{GroupID: group.ID, UserID: editor, IsEditor: true}

	err := svc.Delete(context.Background(), editor, group.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	if err := svc.Delete(context.Background(), creator, group.ID); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
}

func TestAddMemberThenDuplicateConflicts(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	target := uuid.New()
	group := seedGroup(repo, creator)

	if err := svc.AddMember(context.Background(), creator, group.ID, target, false); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := svc.AddMember(context.Background(), creator, group.ID, target, false)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestAddMemberForbiddenForNonEditorMember(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	member := uuid.New()
	group := seedGroup(repo, creator)
	repo.memberships[membershipKey{group.ID, member}] = &models.GroupMembership{GroupID: group.ID, UserID: member}

	err := svc.AddMember(context.Background(), member, group.ID, uuid.New(), false)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestRemoveMemberNotInGroup(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	group := seedGroup(repo, creator)

	err := svc.RemoveMember(context.Background(), creator, group.ID, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestEditorEscalationScenario(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	userA := uuid.New()
	userB := uuid.New()
	userC := uuid.New()
	group := seedGroup(repo, userA)
	repo.memberships[membershipKey{group.ID, userB}] = &models.GroupMembership{GroupID: group.ID, UserID: userB}

	// B cannot promote themselves.
	err := svc.UpdateMemberRole(context.Background(), userB, group.ID, userB, true)
	assertCode(t, err, pkgerrors.CodeForbidden)

	// A promotes B, after which B may manage members.
	if err := svc.UpdateMemberRole(context.Background(), userA, group.ID, userB, true); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if err := svc.AddMember(context.Background(), userB, group.ID, userC, false); err != nil {
		t.Fatalf("editor add: %v", err)
	}
}

func TestUpdateMemberRoleTargetAbsent(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	group := seedGroup(repo, creator)

	err := svc.UpdateMemberRole(context.Background(), creator, group.ID, uuid.New(), true)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListMembersRequiresMembershipRow(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	member := uuid.New()
	group := seedGroup(repo, creator)
	repo.memberships[membershipKey{group.ID, member}] = &models.GroupMembership{GroupID: group.ID, UserID: member}

	// The creator holds no membership row and is excluded.
	_, err := svc.ListMembers(context.Background(), creator, group.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	members, err := svc.ListMembers(context.Background(), member, group.ID)
	if err != nil {
		t.Fatalf("member list: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
}

func TestListMembersMissingGroup(t *testing.T) {
	svc := newGroupsService(t, newStubGroupsRepo())
	_, err := svc.ListMembers(context.Background(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetMemberRoleReturnsEditorFlag(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	editor := uuid.New()
	member := uuid.New()
	group := seedGroup(repo, creator)
	repo.memberships[membershipKey{group.ID, editor}] = &models.GroupMembership{GroupID: group.ID, UserID: editor, IsEditor: true}
	repo.memberships[membershipKey{group.ID, member}] = &models.GroupMembership{GroupID: group.ID, UserID: member}

	isEditor, err := svc.GetMemberRole(context.Background(), editor, group.ID)
	if err != nil {
		t.Fatalf("editor role: %v", err)
	}
	if !isEditor {
		t.Fatal("expected editor flag set")
	}

	isEditor, err = svc.GetMemberRole(context.Background(), member, group.ID)
	if err != nil {
		t.Fatalf("member role: %v", err)
	}
	if isEditor {
		t.Fatal("expected editor flag unset")
	}
}

func TestGetMemberRoleRequiresMembershipRow(t *testing.T) {
	repo := newStubGroupsRepo()
	svc := newGroupsService(t, repo)
	creator := uuid.New()
	group := seedGroup(repo, creator)

	// The creator holds no membership row and is excluded.
	_, err := svc.GetMemberRole(context.Background(), creator, group.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestGetMemberRoleMissingGroup(t *testing.T) {
	svc := newGroupsService(t, newStubGroupsRepo())
	_, err := svc.GetMemberRole(context.Background(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}
