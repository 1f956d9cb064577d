package steps

import (
	"context"
	"testing"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubStepsRepo struct {
	rows  map[uuid.UUID]*models.Step
	links map[uuid.UUID]int64
}

func newStubStepsRepo() *stubStepsRepo {
	return &stubStepsRepo{
		rows:  map[uuid.UUID]*models.Step{},
		links: map[uuid.UUID]int64{},
	}
}

func (s *stubStepsRepo) Create(_ context.Context, dto CreateStepDTO) (*models.Step, error) {
	row := dto.ToModel()
	s.rows[row.ID] = row
	return row, nil
}

func (s *stubStepsRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Step, error) {
	if row, ok := s.rows[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStepsRepo) Update(_ context.Context, row *models.Step) error {
	s.rows[row.ID] = row
	return nil
}

func (s *stubStepsRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func (s *stubStepsRepo) FindByName(_ context.Context, _ string) ([]models.Step, error) {
	var out []models.Step
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubStepsRepo) List(_ context.Context) ([]models.Step, error) {
	var out []models.Step
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubStepsRepo) CountDishLinks(_ context.Context, stepID uuid.UUID) (int64, error) {
	return s.links[stepID], nil
}

func newStepsService(t *testing.T, repo *stubStepsRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestDeleteInUseBeatsNotFound(t *testing.T) {
	repo := newStubStepsRepo()
	svc := newStepsService(t, repo)

	// A referenced step id is rejected as in-use even when the row itself
	// is gone.
	ghost := uuid.New()
	repo.links[ghost] = 2

	err := svc.Delete(context.Background(), ghost)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInUse {
		t.Fatalf("expected in-use, got %v", err)
	}
}

func TestDeleteUnreferencedStep(t *testing.T) {
	repo := newStubStepsRepo()
	svc := newStepsService(t, repo)

	step, err := svc.Create(context.Background(), "boil water", nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), step.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestDeleteMissingStep(t *testing.T) {
	svc := newStepsService(t, newStubStepsRepo())
	err := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateMissingStep(t *testing.T) {
	svc := newStepsService(t, newStubStepsRepo())
	name := "chop onions"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateStepInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
