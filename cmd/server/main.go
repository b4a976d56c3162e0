package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/adapters/http/routes"
	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/adapters/storage"
	"bookstore-api/internal/config"
	"bookstore-api/internal/core/services"
	"bookstore-api/internal/pkg/jwt"
	"bookstore-api/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"

	_ "bookstore-api/docs" // Swagger docs
)

// @title BookStore API
// @version 1.0
// @description Authors and books catalog with JWT authentication and role-based authorization.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.AppMode)
	ctx := context.Background()

	// Token manager; a missing key or issuer stops startup
	tokens, err := jwt.NewManager(cfg.JWT.Key, cfg.JWT.Issuer, cfg.TokenValidity())
	if err != nil {
		logging.LogError(ctx, logger, "invalid token configuration", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logging.LogError(ctx, logger, "failed to connect to database", err)
		os.Exit(1)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		logging.LogError(ctx, logger, "failed to auto migrate", err)
		os.Exit(1)
	}
	logger.Info(ctx, "database ready", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "name", cfg.Database.DBName)

	if err := config.NewSeeder(db, cfg, logger).Run(ctx); err != nil {
		logging.LogError(ctx, logger, "failed to seed database", err)
		os.Exit(1)
	}

	assets, err := newAssetStore(ctx, cfg)
	if err != nil {
		logging.LogError(ctx, logger, "failed to open asset store", err)
		os.Exit(1)
	}

	// Start Cron Service for the asset audit
	cronService := services.NewCronService(repositories.NewBookRepository(db), assets, cfg.Jobs.AssetAuditSchedule, logger)
	if err := cronService.Start(); err != nil {
		logging.LogError(ctx, logger, "failed to start cron", err)
		os.Exit(1)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BookStore API v1.0",
		ErrorHandler: middleware.CustomErrorHandler(logger),
		BodyLimit:    16 * 1024 * 1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, routes.Deps{
		DB:     db,
		Config: cfg,
		Tokens: tokens,
		Assets: assets,
		Log:    logger,
	})

	// Graceful shutdown
	go gracefulShutdown(app, logger)

	// Start server
	logger.Info(ctx, "server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.LogError(ctx, logger, "failed to start server", err)
	}
}

// newAssetStore opens the configured book image backend
func newAssetStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Backend == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			Prefix:    cfg.Storage.S3Prefix,
			AccessKey: cfg.Storage.S3User,
			SecretKey: cfg.Storage.S3Password,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.Storage.UploadsDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, logger logging.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(context.Background(), "shutting down server")
	if err := app.Shutdown(); err != nil {
		logging.LogError(context.Background(), logger, "error during shutdown", err)
	}
	logger.Info(context.Background(), "server stopped gracefully")
}
