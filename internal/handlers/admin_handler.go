package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	resp, err := h.adminService.ListUsers(limit, offset)
	if err != nil {
		return internalError(c)
	}

	h.adminService.RecordAction(adminID, nil, "list_users", map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	return c.JSON(resp)
}

func (h *AdminHandler) ListActions(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return unauthorized(c)
	}

	resp, err := h.adminService.ListActions(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) ListTeams(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return unauthorized(c)
	}

	resp, err := h.adminService.ListTeams()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}
