// Package main is the entry point for the catalog service.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpdelivery "github.com/mutugading/goapps-backend/services/catalog/internal/delivery/http"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/audit"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/memory"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/postgres"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/rabbitmq"
	redisinfra "github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/redis"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/tracing"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Service failed")
	}
}

// storage holds the repositories selected by configuration.
type storage struct {
	categories category.Repository
	products   product.Repository
	db         *postgres.DB
	checks     map[string]httpdelivery.Checker
	closers    []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Setup(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		PrettyJSON: cfg.Logger.PrettyJSON,
		Service:    cfg.App.Name,
		Version:    cfg.App.Version,
	})

	log.Info().
		Str("service", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting catalog service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Setup tracing (optional)
	cleanupTracing := setupTracing(ctx, cfg)
	defer cleanupTracing()

	// Setup repositories
	store, err := setupStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	// Setup Redis (optional - graceful degradation)
	setupCache(cfg, store)

	// Setup event publishing
	publisher, closePublisher := setupPublisher(cfg, store)
	defer closePublisher()

	// Setup domain services and HTTP handlers
	categoryService := category.NewService(store.categories, product.NewCategoryUsage(store.products))
	productService := product.NewService(store.products, store.categories, cfg.Pricing.PriceBands())

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Server:     &cfg.Server,
		Categories: httpdelivery.NewCategoryHandler(store.categories, categoryService, publisher),
		Products:   httpdelivery.NewProductHandler(store.products, store.categories, productService, publisher),
		Checks:     store.checks,
	})

	return serve(ctx, cfg, httpdelivery.NewServer(&cfg.Server, router))
}

// setupTracing initializes tracing and returns a cleanup function.
func setupTracing(ctx context.Context, cfg *config.Config) func() {
	tracingProvider, err := tracing.NewProvider(ctx, &cfg.Tracing, &cfg.App)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to setup tracing, continuing without it")
		return func() {}
	}

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tracingProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to shutdown tracing provider")
		}
	}
}

// setupStorage selects the in-memory or PostgreSQL repositories.
func setupStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	store := &storage{checks: map[string]httpdelivery.Checker{}}

	if cfg.Storage.Driver == config.StorageMemory {
		store.categories = memory.NewCategoryRepository()
		store.products = memory.NewProductRepository()
		log.Info().Msg("Using in-memory repositories")
		return store, nil
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	store.closers = append(store.closers, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database connection")
		}
	})

	if cfg.Database.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			store.close()
			return nil, err
		}
	}

	store.db = db
	store.categories = postgres.NewCategoryRepository(db)
	store.products = postgres.NewProductRepository(db)
	store.checks["database"] = db
	return store, nil
}

// setupCache decorates the category repository with Redis when enabled.
func setupCache(cfg *config.Config, store *storage) {
	if !cfg.Redis.Enabled {
		return
	}

	client, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis, continuing without cache")
		return
	}
	store.closers = append(store.closers, func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	})

	store.categories = redisinfra.NewCachedCategoryRepository(store.categories, client, cfg.Redis.CacheTTL)
	store.checks["redis"] = httpdelivery.CheckerFunc(client.Ping)
}

// setupPublisher builds the traced event fan-out: the audit trail always, RabbitMQ when enabled.
func setupPublisher(cfg *config.Config, store *storage) (shared.EventPublisher, func()) {
	var auditLogger audit.Logger = audit.NewLogLogger(log.Logger)
	if store.db != nil {
		auditLogger = audit.NewPostgresLogger(store.db)
	}
	publishers := shared.MultiPublisher{audit.NewRecorder(auditLogger)}

	if !cfg.RabbitMQ.Enabled {
		return tracing.NewPublisher(publishers), func() {}
	}

	broker, err := rabbitmq.NewPublisher(&cfg.RabbitMQ, cfg.App.Name)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to RabbitMQ, continuing without event delivery")
		return tracing.NewPublisher(publishers), func() {}
	}

	return tracing.NewPublisher(append(publishers, broker)), func() {
		if err := broker.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close RabbitMQ publisher")
		}
	}
}

// serve runs the HTTP server until ctx is canceled, then shuts it down gracefully.
func serve(ctx context.Context, cfg *config.Config, server *httpdelivery.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}

	log.Info().Msg("Server shutdown complete")
	return nil
}
