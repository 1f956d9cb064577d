package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/FamilyDinnerTime/backend/api/routes"
	"github.com/FamilyDinnerTime/backend/internal/auth"
	"github.com/FamilyDinnerTime/backend/internal/dishes"
	"github.com/FamilyDinnerTime/backend/internal/groups"
	"github.com/FamilyDinnerTime/backend/internal/ingredients"
	"github.com/FamilyDinnerTime/backend/internal/steps"
	"github.com/FamilyDinnerTime/backend/internal/users"
	"github.com/FamilyDinnerTime/backend/internal/votings"
	pkgauth "github.com/FamilyDinnerTime/backend/pkg/auth"
	"github.com/FamilyDinnerTime/backend/pkg/auth/session"
	"github.com/FamilyDinnerTime/backend/pkg/config"
	"github.com/FamilyDinnerTime/backend/pkg/db"
	"github.com/FamilyDinnerTime/backend/pkg/logger"
	"github.com/FamilyDinnerTime/backend/pkg/metrics"
	"github.com/FamilyDinnerTime/backend/pkg/migrate"
	"github.com/FamilyDinnerTime/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	minter, err := pkgauth.NewMinter(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create token minter", err)
		os.Exit(1)
	}

	accessTTL := time.Duration(cfg.JWT.ExpirationMinutes) * time.Minute
	sessionManager, err := session.NewManager(redisClient, accessTTL, cfg.JWT.RefreshTokenTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(usersRepo, sessionManager, minter, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	groupsService, err := groups.NewService(groups.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create groups service", err)
		os.Exit(1)
	}

	dishesService, err := dishes.NewService(dishes.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create dishes service", err)
		os.Exit(1)
	}

	ingredientsService, err := ingredients.NewService(ingredients.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create ingredients service", err)
		os.Exit(1)
	}

	stepsService, err := steps.NewService(steps.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create steps service", err)
		os.Exit(1)
	}

	votingsRepo := votings.NewRepository(dbClient.DB())
	votingsService, err := votings.NewService(votingsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create votings service", err)
		os.Exit(1)
	}

	votingOptionsService, err := votings.NewOptionsService(votingsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create voting options service", err)
		os.Exit(1)
	}

	if err := auth.EnsureAdmin(context.Background(), cfg.Bootstrap, cfg.Password, usersRepo, logg); err != nil {
		logg.Error(context.Background(), "failed to bootstrap admin account", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Minter:        minter,
			Sessions:      sessionManager,
			HTTPMetrics:   httpMetrics,
			Gatherer:      registry,
			Auth:          authService,
			Groups:        groupsService,
			Dishes:        dishesService,
			Ingredients:   ingredientsService,
			Steps:         stepsService,
			Votings:       votingsService,
			VotingOptions: votingOptionsService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "api server shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}
}
