package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/config"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/matchsync"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/models"
	"github.com/ktsuchida/sensilog/internal/services"
)

type MatchHandler struct {
	matchService *services.MatchService
	authService  *services.AuthService
	worker       *matchsync.Worker
	cfg          *config.Config
}

func NewMatchHandler(matchService *services.MatchService, authService *services.AuthService, worker *matchsync.Worker, cfg *config.Config) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		authService:  authService,
		worker:       worker,
		cfg:          cfg,
	}
}

func (h *MatchHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	filter := services.MatchFilter{
		Maps:     splitCSV(c.Query("maps")),
		Agents:   splitCSV(c.Query("agents")),
		GameMode: c.Query("gameMode"),
		Limit:    clampLimit(c.QueryInt("limit", 50), 100),
		Offset:   maxInt(c.QueryInt("offset", 0), 0),
	}
	if filter.StartDate, err = parseDateQuery(c, "startDate"); err != nil {
		return badRequest(c, "Invalid startDate, expected YYYY-MM-DD")
	}
	if filter.EndDate, err = parseDateQuery(c, "endDate"); err != nil {
		return badRequest(c, "Invalid endDate, expected YYYY-MM-DD")
	}

	matches, total, err := h.matchService.List(userID, filter)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(dto.MatchListResponse{
		Matches: matches,
		Total:   total,
		HasMore: int64(filter.Offset+len(matches)) < total,
	})
}

func (h *MatchHandler) Summary(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	startDate, err := parseDateQuery(c, "startDate")
	if err != nil {
		return badRequest(c, "Invalid startDate, expected YYYY-MM-DD")
	}
	endDate, err := parseDateQuery(c, "endDate")
	if err != nil {
		return badRequest(c, "Invalid endDate, expected YYYY-MM-DD")
	}

	summary, err := h.matchService.Summary(userID, startDate, endDate)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(summary)
}

// Sync enqueues a background sync job. A repeat request inside the cooldown
// window gets 429 with the seconds left before the next allowed attempt.
func (h *MatchHandler) Sync(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	req := dto.SyncRequest{Count: 10}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := dto.Validate(&req); err != nil {
			return badRequest(c, err.Error())
		}
		if req.Count == 0 {
			req.Count = 10
		}
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		return internalError(c)
	}
	if user.RiotPuuid == nil {
		return badRequest(c, "No riot account is linked")
	}

	job, retryAfter, err := h.worker.Submit(userID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, matchsync.ErrCooldownActive):
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.RateLimitResponse{
				Error:      true,
				Message:    "Sync was requested too recently, try again later",
				Code:       "SYNC_COOLDOWN",
				RetryAfter: retryAfter,
			})
		case errors.Is(err, matchsync.ErrQueueFull):
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Sync queue is full, try again later", Code: "QUEUE_FULL",
			})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.SyncAcceptedResponse{
		Message: "Match sync started",
		JobID:   job.ID,
	})
}

func (h *MatchHandler) SyncStatus(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	job, err := h.worker.Status(jobID, userID)
	if err != nil {
		if errors.Is(err, matchsync.ErrJobNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(syncStatusResponse(job))
}

// GenerateMock seeds the account with deterministic fake matches. Only
// available outside production.
func (h *MatchHandler) GenerateMock(c *fiber.Ctx) error {
	if !h.cfg.IsDevelopment() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Mock data generation is disabled in production",
		})
	}

	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	req := dto.GenerateMockRequest{Count: 20}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := dto.Validate(&req); err != nil {
			return badRequest(c, err.Error())
		}
		if req.Count == 0 {
			req.Count = 20
		}
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		return internalError(c)
	}
	puuid := userID.String()
	if user.RiotPuuid != nil {
		puuid = *user.RiotPuuid
	}

	generated, err := h.matchService.GenerateMock(userID, puuid, req.Count)
	if err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.GenerateMockResponse{
		Message:   "Mock matches generated",
		Generated: generated,
	})
}

func syncStatusResponse(job *models.SyncJob) dto.SyncStatusResponse {
	return dto.SyncStatusResponse{
		JobID:          job.ID,
		Status:         job.Status,
		RequestedCount: job.RequestedCount,
		SyncedCount:    job.SyncedCount,
		SkippedCount:   job.SkippedCount,
		FailedCount:    job.FailedCount,
		Error:          job.Error,
		StartedAt:      job.StartedAt,
		CompletedAt:    job.CompletedAt,
		CreatedAt:      job.CreatedAt,
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
