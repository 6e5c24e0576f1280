package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/models"
	"github.com/ktsuchida/sensilog/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	filter := services.SettingsFilter{
		Limit:  clampLimit(c.QueryInt("limit", 50), 100),
		Offset: maxInt(c.QueryInt("offset", 0), 0),
	}
	if filter.StartDate, err = parseDateQuery(c, "startDate"); err != nil {
		return badRequest(c, "Invalid startDate, expected YYYY-MM-DD")
	}
	if filter.EndDate, err = parseDateQuery(c, "endDate"); err != nil {
		return badRequest(c, "Invalid endDate, expected YYYY-MM-DD")
	}

	records, total, err := h.settingsService.List(userID, filter)
	if err != nil {
		return internalError(c)
	}

	resp := dto.SettingsRecordListResponse{
		Records: make([]dto.SettingsRecordResponse, 0, len(records)),
		Total:   total,
		HasMore: int64(filter.Offset+len(records)) < total,
	}
	for i := range records {
		resp.Records = append(resp.Records, settingsRecordResponse(&records[i]))
	}
	return c.JSON(resp)
}

func (h *SettingsHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateSettingsRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	record, err := h.settingsService.Create(userID, &req)
	if err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(settingsRecordResponse(record))
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record id")
	}

	record, err := h.settingsService.Get(userID, recordID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(settingsRecordResponse(record))
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record id")
	}

	var req dto.UpdateSettingsRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	record, err := h.settingsService.Update(userID, recordID, &req)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(settingsRecordResponse(record))
}

func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record id")
	}

	if err := h.settingsService.Delete(userID, recordID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SettingsHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(h.settingsService.Suggestions())
}

func settingsRecordResponse(record *models.SettingsRecord) dto.SettingsRecordResponse {
	return dto.SettingsRecordResponse{
		ID:             record.ID,
		UserID:         record.UserID,
		Sensitivity:    record.Sensitivity,
		DPI:            record.DPI,
		MouseDevice:    record.MouseDevice,
		KeyboardDevice: record.KeyboardDevice,
		Mousepad:       record.Mousepad,
		Tags:           record.Tags,
		Comment:        record.Comment,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return 50
	}
	return limit
}

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
