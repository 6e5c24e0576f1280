package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var query dto.PerformanceQuery
	if err := c.QueryParser(&query); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if err := dto.Validate(&query); err != nil {
		return badRequest(c, err.Error())
	}

	var startDate, endDate *time.Time
	if query.StartDate != "" {
		t, _ := time.Parse("2006-01-02", query.StartDate)
		startDate = &t
	}
	if query.EndDate != "" {
		t, _ := time.Parse("2006-01-02", query.EndDate)
		endDate = &t
	}
	groupBy := query.GroupBy
	if groupBy == "" {
		groupBy = "day"
	}

	resp, err := h.analyticsService.Performance(userID, query.Metric, startDate, endDate, groupBy)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *AnalyticsHandler) Comparison(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ComparisonRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.analyticsService.ComparePeriods(userID, &req)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *AnalyticsHandler) Correlation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var query dto.CorrelationQuery
	if err := c.QueryParser(&query); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if err := dto.Validate(&query); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(h.analyticsService.Correlation(userID, &query))
}
