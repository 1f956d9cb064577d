package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/FamilyDinnerTime/backend/internal/auth"
	"github.com/FamilyDinnerTime/backend/internal/dishes"
	"github.com/FamilyDinnerTime/backend/internal/groups"
	"github.com/FamilyDinnerTime/backend/internal/ingredients"
	"github.com/FamilyDinnerTime/backend/internal/steps"
	"github.com/FamilyDinnerTime/backend/internal/votings"
	pkgauth "github.com/FamilyDinnerTime/backend/pkg/auth"
	"github.com/FamilyDinnerTime/backend/pkg/config"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) HasAccessSession(context.Context, string, string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterInput) (*auth.AuthResultDTO, error) {
	return &auth.AuthResultDTO{}, nil
}

func (stubAuthService) Login(context.Context, string, string) (*auth.AuthResultDTO, error) {
	return &auth.AuthResultDTO{}, nil
}

func (stubAuthService) Refresh(context.Context, string) (*auth.AuthResultDTO, error) {
	return &auth.AuthResultDTO{}, nil
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

type stubGroupsService struct{}

func (stubGroupsService) Create(context.Context, uuid.UUID, string, *string) (*groups.GroupDTO, error) {
	panic("unimplemented")
}

func (stubGroupsService) Update(context.Context, uuid.UUID, uuid.UUID, groups.UpdateGroupInput) (*groups.GroupDTO, error) {
	panic("unimplemented")
}

func (stubGroupsService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubGroupsService) AddMember(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, bool) error {
	panic("unimplemented")
}

func (stubGroupsService) RemoveMember(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubGroupsService) UpdateMemberRole(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, bool) error {
	panic("unimplemented")
}

func (stubGroupsService) ListMembers(context.Context, uuid.UUID, uuid.UUID) ([]groups.MemberDTO, error) {
	panic("unimplemented")
}

func (stubGroupsService) GetMemberRole(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	panic("unimplemented")
}

func (stubGroupsService) FindByName(context.Context, string) ([]groups.GroupDTO, error) {
	panic("unimplemented")
}

func (stubGroupsService) FindByCreator(context.Context, uuid.UUID) ([]groups.GroupDTO, error) {
	panic("unimplemented")
}

func (stubGroupsService) FindByMember(context.Context, uuid.UUID) ([]groups.GroupDTO, error) {
	return []groups.GroupDTO{}, nil
}

type stubDishesService struct{}

func (stubDishesService) Create(context.Context, uuid.UUID, string, *string, *int) (*dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) Update(context.Context, uuid.UUID, uuid.UUID, dishes.UpdateDishInput) (*dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubDishesService) FindByID(context.Context, uuid.UUID) (*dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) FindByName(context.Context, string) ([]dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) FindByCreator(context.Context, uuid.UUID) ([]dishes.DishDTO, error) {
	return []dishes.DishDTO{}, nil
}

func (stubDishesService) AddIngredient(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, int, string) error {
	panic("unimplemented")
}

func (stubDishesService) RemoveIngredient(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubDishesService) ListIngredients(context.Context, uuid.UUID) ([]dishes.DishIngredientDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) AddStep(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, int) error {
	panic("unimplemented")
}

func (stubDishesService) RemoveStep(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubDishesService) ListSteps(context.Context, uuid.UUID) ([]dishes.DishStepDTO, error) {
	panic("unimplemented")
}

type stubIngredientsService struct{}

func (stubIngredientsService) Create(context.Context, string, *string) (*ingredients.IngredientDTO, error) {
	return &ingredients.IngredientDTO{}, nil
}

func (stubIngredientsService) Update(context.Context, uuid.UUID, ingredients.UpdateIngredientInput) (*ingredients.IngredientDTO, error) {
	panic("unimplemented")
}

func (stubIngredientsService) Delete(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubIngredientsService) FindByID(context.Context, uuid.UUID) (*ingredients.IngredientDTO, error) {
	panic("unimplemented")
}

func (stubIngredientsService) FindByName(context.Context, string) ([]ingredients.IngredientDTO, error) {
	panic("unimplemented")
}

func (stubIngredientsService) List(context.Context) ([]ingredients.IngredientDTO, error) {
	return []ingredients.IngredientDTO{}, nil
}

type stubStepsService struct{}

func (stubStepsService) Create(context.Context, string, *string, *int) (*steps.StepDTO, error) {
	panic("unimplemented")
}

func (stubStepsService) Update(context.Context, uuid.UUID, steps.UpdateStepInput) (*steps.StepDTO, error) {
	panic("unimplemented")
}

func (stubStepsService) Delete(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

func (stubStepsService) FindByID(context.Context, uuid.UUID) (*steps.StepDTO, error) {
	panic("unimplemented")
}

func (stubStepsService) FindByName(context.Context, string) ([]steps.StepDTO, error) {
	panic("unimplemented")
}

func (stubStepsService) List(context.Context) ([]steps.StepDTO, error) {
	return []steps.StepDTO{}, nil
}

type stubVotingsService struct{}

func (stubVotingsService) Create(context.Context, uuid.UUID, string) (*votings.VotingDTO, error) {
	panic("unimplemented")
}

func (stubVotingsService) Update(context.Context, uuid.UUID, uuid.UUID, string) (*votings.VotingDTO, error) {
	panic("unimplemented")
}

func (stubVotingsService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubVotingsService) FindByID(context.Context, uuid.UUID) (*votings.VotingDTO, error) {
	panic("unimplemented")
}

func (stubVotingsService) FindVisible(context.Context, uuid.UUID) ([]votings.VotingDTO, error) {
	return []votings.VotingDTO{}, nil
}

func (stubVotingsService) FindVisibleByName(context.Context, string, uuid.UUID) ([]votings.VotingDTO, error) {
	panic("unimplemented")
}

func (stubVotingsService) FindByCreator(context.Context, uuid.UUID) ([]votings.VotingDTO, error) {
	panic("unimplemented")
}

func (stubVotingsService) AddDish(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubVotingsService) RemoveDish(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubVotingsService) ListOptions(context.Context, uuid.UUID) ([]votings.OptionDTO, error) {
	panic("unimplemented")
}

type stubOptionsService struct {
	deleted []uuid.UUID
}

func (s *stubOptionsService) FindByID(context.Context, uuid.UUID) (*votings.OptionDTO, error) {
	panic("unimplemented")
}

func (s *stubOptionsService) ListByVoting(context.Context, uuid.UUID) ([]votings.OptionDTO, error) {
	panic("unimplemented")
}

func (s *stubOptionsService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(t *testing.T, options *stubOptionsService) (http.Handler, *pkgauth.Minter) {
	t.Helper()
	cfg := testConfig()
	minter, err := pkgauth.NewMinter(cfg.JWT)
	if err != nil {
		t.Fatalf("new minter: %v", err)
	}
	if options == nil {
		options = &stubOptionsService{}
	}

	router := NewRouter(Deps{
		Config:        cfg,
		DB:            stubPinger{},
		Minter:        minter,
		Sessions:      stubSessions{},
		Auth:          stubAuthService{},
		Groups:        stubGroupsService{},
		Dishes:        stubDishesService{},
		Ingredients:   stubIngredientsService{},
		Steps:         stubStepsService{},
		Votings:       stubVotingsService{},
		VotingOptions: options,
	})
	return router, minter
}

func mintToken(t *testing.T, minter *pkgauth.Minter, roles []string) string {
	t.Helper()
	pair, err := minter.MintPair(uuid.NewString(), "tester", roles)
	if err != nil {
		t.Fatalf("mint pair: %v", err)
	}
	return pair.AccessToken
}

func TestHealthLive(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateRoutesRejectMissingJWT(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dishes/my", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPrivateRoutesAcceptValidJWT(t *testing.T) {
	router, minter := newTestRouter(t, nil)
	token := mintToken(t, minter, []string{"ROLE_USER"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dishes/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestIngredientMutationRequiresAdminRole(t *testing.T) {
	router, minter := newTestRouter(t, nil)
	body := `{"name":"flour"}`

	userToken := mintToken(t, minter, []string{"ROLE_USER"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingredients/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	adminToken := mintToken(t, minter, []string{"ROLE_USER", "ROLE_ADMIN"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/ingredients/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	options := &stubOptionsService{}
	router, minter := newTestRouter(t, options)
	optionID := uuid.New()

	userToken := mintToken(t, minter, []string{"ROLE_USER"})
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/voting-options/"+optionID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if len(options.deleted) != 0 {
		t.Fatal("delete must not reach the service without the admin role")
	}

	adminToken := mintToken(t, minter, []string{"ROLE_ADMIN"})
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/v1/voting-options/"+optionID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(options.deleted) != 1 || options.deleted[0] != optionID {
		t.Fatalf("expected delete of %s, got %v", optionID, options.deleted)
	}
}

func TestLoginRejectsBadJSON(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
