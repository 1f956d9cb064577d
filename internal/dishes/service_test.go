package dishes

import (
	"context"
	"testing"

	"github.com/FamilyDinnerTime/backend/pkg/db/models"
	pkgerrors "github.com/FamilyDinnerTime/backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ingredientKey struct {
	dishID       uuid.UUID
	ingredientID uuid.UUID
}

type stepKey struct {
	dishID uuid.UUID
	stepID uuid.UUID
}

type stubDishesRepo struct {
	dishes      map[uuid.UUID]*models.Dish
	ingredients map[ingredientKey]*models.DishIngredient
	steps       map[stepKey]*models.DishStep
}

func newStubDishesRepo() *stubDishesRepo {
	return &stubDishesRepo{
		dishes:      map[uuid.UUID]*models.Dish{},
		ingredients: map[ingredientKey]*models.DishIngredient{},
		steps:       map[stepKey]*models.DishStep{},
	}
}

func (s *stubDishesRepo) Create(_ context.Context, dto CreateDishDTO) (*models.Dish, error) {
	dish := dto.ToModel()
	s.dishes[dish.ID] = dish
	return dish, nil
}

func (s *stubDishesRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Dish, error) {
	if dish, ok := s.dishes[id]; ok {
		return dish, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDishesRepo) Update(_ context.Context, dish *models.Dish) error {
	s.dishes[dish.ID] = dish
	return nil
}

func (s *stubDishesRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.dishes[id]; !ok {
		return 0, nil
	}
	delete(s.dishes, id)
	return 1, nil
}

func (s *stubDishesRepo) FindByName(_ context.Context, _ string) ([]models.Dish, error) {
	var out []models.Dish
	for _, d := range s.dishes {
		out = append(out, *d)
	}
	return out, nil
}

func (s *stubDishesRepo) FindByCreator(_ context.Context, userID uuid.UUID) ([]models.Dish, error) {
	var out []models.Dish
	for _, d := range s.dishes {
		if d.CreatedBy == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *stubDishesRepo) UpsertIngredient(_ context.Context, dishID, ingredientID uuid.UUID, quantity int, quantityType string) error {
	s.ingredients[ingredientKey{dishID, ingredientID}] = &models.DishIngredient{
		DishID:       dishID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		QuantityType: quantityType,
	}
	return nil
}

func (s *stubDishesRepo) DeleteIngredient(_ context.Context, dishID, ingredientID uuid.UUID) (int64, error) {
	key := ingredientKey{dishID, ingredientID}
	if _, ok := s.ingredients[key]; !ok {
		return 0, nil
	}
	delete(s.ingredients, key)
	return 1, nil
}

func (s *stubDishesRepo) ListIngredients(_ context.Context, dishID uuid.UUID) ([]DishIngredientDTO, error) {
	var out []DishIngredientDTO
	for key, link := range s.ingredients {
		if key.dishID == dishID {
			out = append(out, DishIngredientDTO{
				IngredientID: link.IngredientID,
				Quantity:     link.Quantity,
				QuantityType: link.QuantityType,
			})
		}
	}
	return out, nil
}

func (s *stubDishesRepo) UpsertStep(_ context.Context, dishID, stepID uuid.UUID, stepNumber int) error {
	s.steps[stepKey{dishID, stepID}] = &models.DishStep{
		DishID:     dishID,
		StepID:     stepID,
		StepNumber: stepNumber,
	}
	return nil
}

func (s *stubDishesRepo) DeleteStep(_ context.Context, dishID, stepID uuid.UUID) (int64, error) {
	key := stepKey{dishID, stepID}
	if _, ok := s.steps[key]; !ok {
		return 0, nil
	}
	delete(s.steps, key)
	return 1, nil
}

func (s *stubDishesRepo) ListSteps(_ context.Context, dishID uuid.UUID) ([]DishStepDTO, error) {
	var out []DishStepDTO
	for key, link := range s.steps {
		if key.dishID == dishID {
			out = append(out, DishStepDTO{StepID: link.StepID, StepNumber: link.StepNumber})
		}
	}
	return out, nil
}

func newDishesService(t *testing.T, repo *stubDishesRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedDish(repo *stubDishesRepo, owner uuid.UUID) *models.Dish {
	dish := &models.Dish{ID: uuid.New(), Name: "carbonara", CreatedBy: owner}
	repo.dishes[dish.ID] = dish
	return dish
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

func TestUpdateOwnerOnly(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	owner := uuid.New()
	other := uuid.New()
	dish := seedDish(repo, owner)

	name := "cacio e pepe"
	if _, err := svc.Update(context.Background(), owner, dish.ID, UpdateDishInput{Name: &name}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	_, err := svc.Update(context.Background(), other, dish.ID, UpdateDishInput{Name: &name})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateMissingDish(t *testing.T) {
	svc := newDishesService(t, newStubDishesRepo())
	name := "cacio e pepe"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateDishInput{Name: &name})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteOwnerOnly(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	owner := uuid.New()
	dish := seedDish(repo, owner)

	err := svc.Delete(context.Background(), uuid.New(), dish.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	if err := svc.Delete(context.Background(), owner, dish.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestAddIngredientTwiceUpdatesQuantity(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	owner := uuid.New()
	dish := seedDish(repo, owner)
	ingredient := uuid.New()

	if err := svc.AddIngredient(context.Background(), owner, dish.ID, ingredient, 2, "cups"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddIngredient(context.Background(), owner, dish.ID, ingredient, 3, "tbsp"); err != nil {
		t.Fatalf("second add must upsert, got %v", err)
	}

	links, err := svc.ListIngredients(context.Background(), dish.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected single link after upsert, got %d", len(links))
	}
	if links[0].Quantity != 3 || links[0].QuantityType != "tbsp" {
		t.Fatalf("expected updated quantity, got %+v", links[0])
	}
}

func TestAddIngredientForbiddenForNonOwner(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	dish := seedDish(repo, uuid.New())

	err := svc.AddIngredient(context.Background(), uuid.New(), dish.ID, uuid.New(), 1, "cups")
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestRemoveIngredientNotLinked(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	owner := uuid.New()
	dish := seedDish(repo, owner)

	err := svc.RemoveIngredient(context.Background(), owner, dish.ID, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddStepTwiceUpdatesPosition(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	owner := uuid.New()
	dish := seedDish(repo, owner)
	step := uuid.New()

	if err := svc.AddStep(context.Background(), owner, dish.ID, step, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddStep(context.Background(), owner, dish.ID, step, 4); err != nil {
		t.Fatalf("second add must upsert, got %v", err)
	}

	links, err := svc.ListSteps(context.Background(), dish.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected single link after upsert, got %d", len(links))
	}
	if links[0].StepNumber != 4 {
		t.Fatalf("expected updated position, got %d", links[0].StepNumber)
	}
}

func TestRemoveStepNotLinked(t *testing.T) {
	repo := newStubDishesRepo()
	svc := newDishesService(t, repo)
	owner := uuid.New()
	dish := seedDish(repo, owner)

	err := svc.RemoveStep(context.Background(), owner, dish.ID, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListIngredientsMissingDish(t *testing.T) {
	svc := newDishesService(t, newStubDishesRepo())
	_, err := svc.ListIngredients(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}
