package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/ktsuchida/sensilog/internal/config"
	"github.com/ktsuchida/sensilog/internal/database"
	"github.com/ktsuchida/sensilog/internal/handlers"
	"github.com/ktsuchida/sensilog/internal/logging"
	"github.com/ktsuchida/sensilog/internal/matchsync"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/riot"
	"github.com/ktsuchida/sensilog/internal/routes"
	"github.com/ktsuchida/sensilog/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	logging.Setup(pgLogHandler)

	// Token encryption at rest: required in production, ephemeral otherwise
	var cipher *services.TokenCipher
	var err error
	if cfg.TokenEncryptionKey != "" {
		cipher, err = services.NewTokenCipher(cfg.TokenEncryptionKey)
		if err != nil {
			slog.Error("invalid TOKEN_ENCRYPTION_KEY", "error", err)
			os.Exit(1)
		}
	} else {
		if cfg.AppEnv == "production" {
			slog.Error("TOKEN_ENCRYPTION_KEY environment variable is required in production")
			os.Exit(1)
		}
		cipher, err = services.NewEphemeralTokenCipher()
		if err != nil {
			slog.Error("failed to create token cipher", "error", err)
			os.Exit(1)
		}
		slog.Warn("using ephemeral token encryption key, cached tokens will not survive restarts")
	}

	// Riot API client: mock outside production or when no key is configured
	var riotClient riot.Client
	if cfg.IsDevelopment() || cfg.RiotAPIKey == "" {
		riotClient = riot.NewMockClient()
		slog.Info("using mock riot client")
	} else {
		riotClient = riot.NewHTTPClient(cfg.RiotAPIKey, cfg.RiotRegion)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg, cipher)
	settingsService := services.NewSettingsService(database.DB)
	matchService := services.NewMatchService(database.DB)
	analyticsService := services.NewAnalyticsService(database.DB)
	riotService := services.NewRiotService(database.DB, riotClient)
	adminService := services.NewAdminService(database.DB)

	// Background match sync
	worker := matchsync.NewWorker(database.DB, riotClient, matchService, cfg.SyncCooldown, cfg.SyncQueueSize)
	worker.Start(context.Background())

	// Daily maintenance jobs
	scheduler, err := services.StartScheduler(database.DB)
	if err != nil {
		slog.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	matchHandler := handlers.NewMatchHandler(matchService, authService, worker, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	riotHandler := handlers.NewRiotHandler(riotService)
	adminHandler := handlers.NewAdminHandler(adminService)
	healthHandler := handlers.NewHealthHandler(cfg)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, settingsHandler, matchHandler, analyticsHandler,
		riotHandler, adminHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	worker.Stop()
	if err := scheduler.Shutdown(); err != nil {
		slog.Error("scheduler shutdown error", "error", err)
	}
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
