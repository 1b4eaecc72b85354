package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"online-learning-api/model"
	"online-learning-api/utils/auth"

	"github.com/gofiber/fiber/v2"
)

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(auth.TokenConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Expiry: time.Hour,
		Issuer: "test",
		Prefix: "Bearer ",
	})
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	return svc
}

func newTestApp(tokens *auth.TokenService) *fiber.App {
	app := fiber.New()
	m := NewAuthMiddleware(tokens)

	app.Get("/protected", m.Required(), func(c *fiber.Ctx) error {
		id, _ := GetUserID(c)
		username, _ := GetUsername(c)
		return c.JSON(fiber.Map{"id": id, "username": username})
	})
	app.Get("/admin", m.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequiredRejectsMissingHeader(t *testing.T) {
	tokens := newTestTokens(t)
	app := newTestApp(tokens)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequiredRejectsBadPrefix(t *testing.T) {
	tokens := newTestTokens(t)
	app := newTestApp(tokens)

	token, err := tokens.Generate("alice", model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequiredRejectsInvalidToken(t *testing.T) {
	tokens := newTestTokens(t)
	app := newTestApp(tokens)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequiredAcceptsValidToken(t *testing.T) {
	tokens := newTestTokens(t)
	app := newTestApp(tokens)

	token, err := tokens.Generate("alice", model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireAdminDistinguishes401From403(t *testing.T) {
	tokens := newTestTokens(t)
	app := newTestApp(tokens)

	// No token at all: 401
	req := httptest.NewRequest("GET", "/admin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", resp.StatusCode)
	}

	// Valid student token: 403
	studentToken, err := tokens.Generate("alice", model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("student token: status = %d, want 403", resp.StatusCode)
	}

	// Admin token: 200
	adminToken, err := tokens.Generate("root", model.RoleAdmin, 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("admin token: status = %d, want 200", resp.StatusCode)
	}
}
