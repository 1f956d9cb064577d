package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FamilyDinnerTime/backend/api/controllers"
	"github.com/FamilyDinnerTime/backend/api/middleware"
	"github.com/FamilyDinnerTime/backend/internal/auth"
	"github.com/FamilyDinnerTime/backend/internal/dishes"
	"github.com/FamilyDinnerTime/backend/internal/groups"
	"github.com/FamilyDinnerTime/backend/internal/ingredients"
	"github.com/FamilyDinnerTime/backend/internal/steps"
	"github.com/FamilyDinnerTime/backend/internal/votings"
	pkgauth "github.com/FamilyDinnerTime/backend/pkg/auth"
	"github.com/FamilyDinnerTime/backend/pkg/config"
	"github.com/FamilyDinnerTime/backend/pkg/enums"
	"github.com/FamilyDinnerTime/backend/pkg/logger"
	"github.com/FamilyDinnerTime/backend/pkg/metrics"
	pkgredis "github.com/FamilyDinnerTime/backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sessionChecker interface {
	HasAccessSession(ctx context.Context, userID, accessID string) (bool, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          pinger
	Redis       *pkgredis.Client
	Minter      *pkgauth.Minter
	Sessions    sessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Auth          auth.Service
	Groups        groups.Service
	Dishes        dishes.Service
	Ingredients   ingredients.Service
	Steps         steps.Service
	Votings       votings.Service
	VotingOptions votings.OptionsService
}

// NewRouter wires the HTTP surface: health and metrics endpoints, the public
// auth routes, the authenticated API and the admin surface.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if d.Redis != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB))
		}
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Minter, d.Sessions, logg))

		r.Route("/dishes", func(r chi.Router) {
			r.Post("/", controllers.DishCreate(d.Dishes, logg))
			r.Get("/search", controllers.DishSearch(d.Dishes, logg))
			r.Get("/my", controllers.DishMine(d.Dishes, logg))
			r.Get("/{dishID}", controllers.DishGet(d.Dishes, logg))
			r.Put("/{dishID}", controllers.DishUpdate(d.Dishes, logg))
			r.Delete("/{dishID}", controllers.DishDelete(d.Dishes, logg))

			r.Route("/{dishID}/ingredients", func(r chi.Router) {
				r.Get("/", controllers.DishListIngredients(d.Dishes, logg))
				r.Post("/", controllers.DishAddIngredient(d.Dishes, logg))
				r.Delete("/{ingredientID}", controllers.DishRemoveIngredient(d.Dishes, logg))
			})
			r.Route("/{dishID}/steps", func(r chi.Router) {
				r.Get("/", controllers.DishListSteps(d.Dishes, logg))
				r.Post("/", controllers.DishAddStep(d.Dishes, logg))
				r.Delete("/{stepID}", controllers.DishRemoveStep(d.Dishes, logg))
			})
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", controllers.IngredientList(d.Ingredients, logg))
			r.Get("/{ingredientID}", controllers.IngredientGet(d.Ingredients, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))
				r.Post("/", controllers.IngredientCreate(d.Ingredients, logg))
				r.Put("/{ingredientID}", controllers.IngredientUpdate(d.Ingredients, logg))
				r.Delete("/{ingredientID}", controllers.IngredientDelete(d.Ingredients, logg))
			})
		})

		r.Route("/steps", func(r chi.Router) {
			r.Get("/", controllers.StepList(d.Steps, logg))
			r.Post("/", controllers.StepCreate(d.Steps, logg))
			r.Get("/{stepID}", controllers.StepGet(d.Steps, logg))
			r.Put("/{stepID}", controllers.StepUpdate(d.Steps, logg))
			r.Delete("/{stepID}", controllers.StepDelete(d.Steps, logg))
		})

		r.Route("/user-groups", func(r chi.Router) {
			r.Post("/", controllers.GroupCreate(d.Groups, logg))
			r.Get("/search", controllers.GroupSearch(d.Groups, logg))
			r.Get("/my", controllers.GroupMine(d.Groups, logg))
			r.Get("/created", controllers.GroupCreated(d.Groups, logg))
			r.Put("/{groupID}", controllers.GroupUpdate(d.Groups, logg))
			r.Delete("/{groupID}", controllers.GroupDelete(d.Groups, logg))

			r.Route("/{groupID}/members", func(r chi.Router) {
				r.Get("/", controllers.GroupListMembers(d.Groups, logg))
				r.Get("/me", controllers.GroupMyRole(d.Groups, logg))
				r.Post("/", controllers.GroupAddMember(d.Groups, logg))
				r.Put("/{userID}", controllers.GroupUpdateMemberRole(d.Groups, logg))
				r.Delete("/{userID}", controllers.GroupRemoveMember(d.Groups, logg))
			})
		})

		r.Route("/menu-votings", func(r chi.Router) {
			r.Post("/", controllers.VotingCreate(d.Votings, logg))
			r.Get("/", controllers.VotingVisible(d.Votings, logg))
			r.Get("/created", controllers.VotingCreated(d.Votings, logg))
			r.Get("/{votingID}", controllers.VotingGet(d.Votings, logg))
			r.Put("/{votingID}", controllers.VotingUpdate(d.Votings, logg))
			r.Delete("/{votingID}", controllers.VotingDelete(d.Votings, logg))

			r.Route("/{votingID}/dishes", func(r chi.Router) {
				r.Get("/", controllers.VotingListOptions(d.Votings, logg))
				r.Post("/", controllers.VotingAddDish(d.Votings, logg))
				r.Delete("/{dishID}", controllers.VotingRemoveDish(d.Votings, logg))
			})

			r.Get("/{votingID}/options", controllers.VotingOptionsByVoting(d.VotingOptions, logg))
		})

		r.Get("/voting-options/{optionID}", controllers.VotingOptionGet(d.VotingOptions, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Minter, d.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

		r.Delete("/voting-options/{optionID}", controllers.VotingOptionDelete(d.VotingOptions, logg))
	})

	return r
}
