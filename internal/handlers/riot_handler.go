package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/services"
)

type RiotHandler struct {
	riotService *services.RiotService
}

func NewRiotHandler(riotService *services.RiotService) *RiotHandler {
	return &RiotHandler{riotService: riotService}
}

func (h *RiotHandler) Search(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return unauthorized(c)
	}

	var req dto.PlayerSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.riotService.Search(c.Context(), req.GameName, req.TagLine)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *RiotHandler) Link(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PlayerSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.riotService.Link(c.Context(), userID, req.GameName, req.TagLine)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlayerNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrPuuidTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *RiotHandler) Unlink(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.riotService.Unlink(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotLinked) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *RiotHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.riotService.Status(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}
