package auth

import (
	"errors"

	"online-learning-api/model"
	"online-learning-api/services"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest represents a user registration request. Role is optional
// and defaults to student.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	FullName string `json:"fullName" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin student ADMIN STUDENT"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Username = validation.SanitizeString(req.Username)
	req.FullName = validation.SanitizeString(req.FullName)

	if ok, msg := validation.ValidateUsername(req.Username); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msgs := validation.ValidatePassword(req.Password); !ok {
		return response.BadRequest(c, msgs[0])
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		return response.BadRequest(c, "Role must be ADMIN or STUDENT")
	}

	user, err := h.users.Register(c.Context(), services.RegisterInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return response.Conflict(c, "Username already exists")
		}
		return response.InternalServerError(c, "Failed to register user")
	}

	token, err := h.tokens.Generate(user.Username, user.Role, user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	if h.activity != nil {
		h.activity.Record(c.Context(), user.ID, "registered")
	}

	c.Set("Authorization", h.tokens.Prefix()+token)
	return response.Success(c, AuthResponse{
		Token: token,
		ID:    user.ID,
		Role:  user.Role.Display(),
	})
}
