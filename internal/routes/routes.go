package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ktsuchida/sensilog/internal/config"
	"github.com/ktsuchida/sensilog/internal/handlers"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	settingsHandler *handlers.SettingsHandler,
	matchHandler *handlers.MatchHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	riotHandler *handlers.RiotHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public but gets a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Get("/riot/login", authHandler.LoginURL)
	auth.Post("/riot/callback", authHandler.Callback)

	api.Post("/auth/refresh", middleware.JWTProtected(cfg), authHandler.Refresh)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Settings records (protected)
	settings := api.Group("/settings", middleware.JWTProtected(cfg))
	settings.Get("/suggestions", settingsHandler.Suggestions)
	settings.Get("/records", settingsHandler.List)
	settings.Post("/records", settingsHandler.Create)
	settings.Get("/records/:id", settingsHandler.Get)
	settings.Put("/records/:id", settingsHandler.Update)
	settings.Delete("/records/:id", settingsHandler.Delete)

	// Match data (protected)
	matches := api.Group("/matches", middleware.JWTProtected(cfg))
	matches.Get("/", matchHandler.List)
	matches.Get("/summary", matchHandler.Summary)
	matches.Post("/sync", matchHandler.Sync)
	matches.Get("/sync/:jobId", matchHandler.SyncStatus)
	matches.Post("/generate-mock", matchHandler.GenerateMock)

	// Analytics (protected)
	analytics := api.Group("/analytics", middleware.JWTProtected(cfg))
	analytics.Get("/performance", analyticsHandler.Performance)
	analytics.Post("/comparison", analyticsHandler.Comparison)
	analytics.Get("/correlation", analyticsHandler.Correlation)

	// Riot account linking (protected)
	riot := api.Group("/riot", middleware.JWTProtected(cfg))
	riot.Post("/search-player", riotHandler.Search)
	riot.Post("/link-account", riotHandler.Link)
	riot.Delete("/unlink-account", riotHandler.Unlink)
	riot.Get("/link-status", riotHandler.Status)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/actions", adminHandler.ListActions)
	admin.Get("/teams", adminHandler.ListTeams)
}
