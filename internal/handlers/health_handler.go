package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ktsuchida/sensilog/internal/config"
	"github.com/ktsuchida/sensilog/internal/database"
	"github.com/ktsuchida/sensilog/internal/dto"
)

const version = "1.0.0"

type HealthHandler struct {
	cfg       *config.Config
	startedAt time.Time
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg, startedAt: time.Now()}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbHealth := dto.DatabaseHealth{Status: "ok"}
	pingStart := time.Now()
	if err := database.Ping(); err != nil {
		dbHealth.Status = "unhealthy: " + err.Error()
	}
	dbHealth.ResponseTimeMs = time.Since(pingStart).Milliseconds()

	status := "ok"
	code := fiber.StatusOK
	if dbHealth.Status != "ok" {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(h.startedAt).Seconds(),
		Environment: h.cfg.AppEnv,
		Version:     version,
		Database:    dbHealth,
	})
}
