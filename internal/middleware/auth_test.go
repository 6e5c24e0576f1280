package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func protectedApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New()
	app.Get("/protected", JWTProtected(cfg), func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"userId": userID.String()})
	})
	return app
}

func TestJWTProtected(t *testing.T) {
	app := protectedApp(t)
	userID := uuid.New()

	validClaims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("valid token passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong signing key is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", validClaims))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		}
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, expired))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("token without a uuid subject is unusable", func(t *testing.T) {
		bad := jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, bad))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestUserIDOutsideRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		if _, err := UserID(c); err == nil {
			t.Error("expected error without JWT middleware")
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/open", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
