package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/adapters/http/routes"
	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "eventhire/docs" // Swagger docs
)

// @title EventHire API
// @version 1.0
// @description Event staffing marketplace: job request review, applications and seeker moderation.

// @contact.name API Support
// @contact.email support@eventhire.app

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = config.CloseDatabase() }()

	if err := models.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to auto migrate", zap.Error(err))
	}
	zlog.Info("database migration completed")

	store := repositories.NewStore(db)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.NewSeeder(store, cfg.SuperAdmin).Run(seedCtx); err != nil {
		zlog.Warn("failed to seed database", zap.Error(err))
	}
	cancel()

	// Shared rate limit storage when Redis is configured
	var storage fiber.Storage
	if cfg.Redis.URL != "" {
		redisStorage, err := middleware.NewRedisStorage(cfg.Redis.URL)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisStorage.Close() }()
		storage = redisStorage
		zlog.Info("rate limiter using redis storage")
	}

	notifier := services.NewEmailNotifier(cfg.Mail, zlog)
	if !notifier.IsEnabled() {
		zlog.Warn("MAIL_HOST not set, rejection emails are disabled")
	}

	cronService := services.NewCronService(services.NewJobService(store, zlog), store, cfg.Scheduler, zlog)
	if err := cronService.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EventHire API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg, storage)

	routes.Setup(app, routes.Dependencies{
		Store:    store,
		Config:   cfg,
		Notifier: notifier,
		Storage:  storage,
		Logger:   zlog,
	})

	// Graceful shutdown
	go gracefulShutdown(app, zlog)

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("server stopped", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
