package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoUser = errors.New("no authenticated user in context")

// Claims returns the verified JWT claims stored by JWTProtected.
func Claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoUser
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoUser
	}
	return claims, nil
}

// UserID extracts the authenticated user's id from the token subject.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := Claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrNoUser
	}
	return id, nil
}
