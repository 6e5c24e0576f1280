package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/middleware"
	"github.com/ktsuchida/sensilog/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginURL hands the client the provider authorize URL to redirect to.
func (h *AuthHandler) LoginURL(c *fiber.Ctx) error {
	resp, err := h.authService.BeginLogin()
	if err != nil {
		if errors.Is(err, services.ErrOAuthNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	var req dto.CallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Authorization code is required",
		})
	}

	resp, err := h.authService.Callback(c.Context(), req.Code)
	if err != nil {
		if errors.Is(err, services.ErrAuthFailed) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(resp)
}

// Refresh issues a fresh bearer token for the already-authenticated user.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.ProfileResponse{
		UserResponse: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			GameName:  user.GameName,
			TagLine:   user.TagLine,
			RiotPuuid: user.RiotPuuid,
			IsAdmin:   user.IsAdmin,
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
