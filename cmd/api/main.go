package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	var pg *persistence.Postgres
	if cfg.Auth.IdentityStore == "postgres" {
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
	}

	var redis *persistence.Redis
	var revocationList auth.RevocationList
	if cfg.Redis.Enabled {
		redis, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redis.Close()
		revocationList = persistence.NewRedisRevocationList(redis)
	}

	identityRepo, err := buildIdentityRepository(*cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to build identity store", zap.Error(err))
	}

	dispatcher := events.NewAsyncDispatcher()
	defer dispatcher.Close()
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		IdentityRepo:   identityRepo,
		RevocationList: revocationList,
		Dispatcher:     dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.Validator())

	employeeRepo := repository.NewEmployeeRepository(mongo.Collection(cfg.Mongo.Collection))
	employeeService := service.NewEmployeeService(employeeRepo, dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, pg, redis)
	authHandler := handlers.NewAuthHandler(authService, metrics)
	employeesHandler := handlers.NewEmployeesHandler(employeeService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Employees:      employeesHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildIdentityRepository selects the credential store backend. The in-memory
// store is seeded with a single identity, hashing the seed password at
// startup unless a pre-computed hash is supplied.
func buildIdentityRepository(cfg config.Config, pg *persistence.Postgres, logger *zap.Logger) (repository.IdentityRepository, error) {
	if cfg.Auth.IdentityStore == "postgres" {
		if pg.PoolHandle() == nil {
			return nil, errors.New("AUTH_IDENTITY_STORE=postgres requires POSTGRES_DSN")
		}
		return repository.NewIdentityRepository(pg.PoolHandle()), nil
	}

	hash := cfg.Auth.SeedPasswordHash
	if hash == "" {
		hasher := auth.NewMultiHasher(cfg.Auth.PasswordScheme, auth.Argon2Params{
			Memory:  uint32(cfg.Auth.Argon2Memory),
			Time:    uint32(cfg.Auth.Argon2Time),
			Threads: uint8(cfg.Auth.Argon2Threads),
		}, cfg.Auth.BcryptCost)

		var err error
		hash, err = hasher.Hash(cfg.Auth.SeedPassword)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("using in-memory identity store", zap.String("username", cfg.Auth.SeedUsername))
	return repository.NewMemoryIdentityRepository([]domain.Identity{{
		Username:     cfg.Auth.SeedUsername,
		PasswordHash: hash,
		Disabled:     cfg.Auth.SeedDisabled,
	}}), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
