package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/http/handlers"
	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/config"
	"github.com/spec-kit/movie-service/internal/events"
	"github.com/spec-kit/movie-service/internal/observability"
	"github.com/spec-kit/movie-service/internal/persistence"
	"github.com/spec-kit/movie-service/internal/repository"
	"github.com/spec-kit/movie-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	movieRepo := repository.NewMovieRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	activityRepo := repository.NewMovieActivityRepository(pool)

	revocations := auth.NewRedisRevocationStore(redis.Client)
	tokens := auth.NewTokenAuthority(cfg.Auth.AccessTokenSecret, cfg.Auth.AccessTokenTTL(), revocations)

	dispatcher := events.NewInMemoryDispatcher()
	historyService := service.NewHistoryService(dispatcher, activityRepo, logger)
	historyService.RegisterHandlers()

	authService := service.NewAuthService(cfg.Auth, userRepo, tokens)
	movieService := service.NewMovieService(movieRepo, activityRepo, dispatcher)
	reviewService := service.NewReviewService(reviewRepo, movieRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)

	var googleService *service.GoogleAuthService
	if cfg.Google.Enabled() {
		googleService = service.NewGoogleAuthService(cfg.Google, userRepo)
	}

	jar := httpapi.NewCookieJar(cfg.Auth, cfg.App.Env)
	pipeline := httpapi.NewPipeline(tokens, jar, logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, cfg.App, logger, metrics)

	handlers.RegisterRoutes(app, pipeline, handlers.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService, googleService),
		Movies:        handlers.NewMoviesHandler(movieService),
		Reviews:       handlers.NewReviewsHandler(reviewService),
		Users:         handlers.NewUsersHandler(userService, authService),
		GoogleEnabled: cfg.Google.Enabled(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
