package middleware

import (
	"errors"
	"strings"

	"online-learning-api/model"
	"online-learning-api/utils/auth"
	"online-learning-api/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT authentication. Tokens are stateless: a valid
// signature and an unexpired claim set are the whole decision, no database
// lookup happens on the request path.
type AuthMiddleware struct {
	tokens *auth.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// extractToken pulls the raw token out of the Authorization header. The
// header must carry the configured prefix ("Bearer " by default).
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing authorization token")
	}

	prefix := m.tokens.Prefix()
	if !strings.HasPrefix(authHeader, prefix) {
		return "", errors.New("invalid authorization format")
	}

	token := strings.TrimSpace(authHeader[len(prefix):])
	if token == "" {
		return "", errors.New("invalid authorization format")
	}
	return token, nil
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := m.extractToken(c)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}

		claims, err := m.tokens.ParseClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Subject)
		c.Locals("user_role", claims.Role)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RequireAdmin is middleware that requires a valid token carrying the admin
// role. A valid non-admin token gets 403, anything else gets 401.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := m.extractToken(c)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}

		claims, err := m.tokens.ParseClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		if !claims.Role.Is(model.RoleAdmin) {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Subject)
		c.Locals("user_role", claims.Role)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// GetUserID extracts the authenticated user's id from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUsername extracts the authenticated username from context
func GetUsername(c *fiber.Ctx) (string, bool) {
	username := c.Locals("username")
	if username == nil {
		return "", false
	}
	u, ok := username.(string)
	return u, ok
}

// GetUserRole extracts the authenticated user's role from context
func GetUserRole(c *fiber.Ctx) (model.Role, bool) {
	role := c.Locals("user_role")
	if role == nil {
		return "", false
	}
	r, ok := role.(model.Role)
	return r, ok
}

// GetClaims extracts the full claim set from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims := c.Locals("claims")
	if claims == nil {
		return nil, false
	}
	claimsData, ok := claims.(*auth.Claims)
	return claimsData, ok
}
