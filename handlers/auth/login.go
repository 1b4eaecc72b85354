package auth

import (
	"errors"

	"online-learning-api/services"
	"online-learning-api/utils/response"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	ip := c.IP()

	user, err := h.users.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			if h.bruteForce != nil {
				h.bruteForce.RecordFailedAttempt(c, ip)
			}
			return response.Unauthorized(c, "Invalid username or password")
		}
		return response.InternalServerError(c, "Failed to authenticate")
	}

	if h.bruteForce != nil {
		h.bruteForce.RecordSuccessfulAttempt(c, ip)
	}

	token, err := h.tokens.Generate(user.Username, user.Role, user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	if h.activity != nil {
		h.activity.Record(c.Context(), user.ID, "logged in")
	}

	c.Set("Authorization", h.tokens.Prefix()+token)
	return response.Success(c, AuthResponse{
		Token: token,
		ID:    user.ID,
		Role:  user.Role.Display(),
	})
}
