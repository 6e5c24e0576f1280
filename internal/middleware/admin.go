package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ktsuchida/sensilog/internal/config"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"gorm.io/gorm"
)

// AdminRequired checks, in order, the config-based admin email list and the
// user's is_admin flag in the database. Runs after JWTProtected.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		claims, err := Claims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, email) {
			return c.Next()
		}

		if userID, err := UserID(c); err == nil {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil && user.IsAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
