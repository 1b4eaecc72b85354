package user

import (
	"errors"
	"strconv"

	"online-learning-api/model"
	"online-learning-api/services"
	"online-learning-api/utils/middleware"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user account requests
type UserHandler struct {
	users     *services.UserService
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validation.NewValidator(),
	}
}

// UserResponse is the public shape of a user record
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role.Display(),
	}
}

// UpdateUserRequest represents a profile update. Password is the current
// password and must be supplied; NewPassword is optional.
type UpdateUserRequest struct {
	Username    string `json:"username" validate:"omitempty,min=3,max=30"`
	FullName    string `json:"fullName" validate:"omitempty,max=255"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=8"`
}

// ListUsers handles GET /api/users (admin only, enforced by middleware)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.FindAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return response.Success(c, out)
}

// GetUserByID handles GET /api/users/id/:id
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	user, err := h.users.FindByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, toUserResponse(user))
}

// GetUserByUsername handles GET /api/users/username/:username
func (h *UserHandler) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := h.users.FindByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	return response.Success(c, toUserResponse(user))
}

// UpdateUser handles PUT /api/users/:id. Users may only update their own
// account; the path id must match the token identity.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	if callerID != uint(id) {
		return response.Forbidden(c, "Cannot modify another user's account")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Username = validation.SanitizeString(req.Username)
	req.FullName = validation.SanitizeString(req.FullName)

	if req.Username != "" {
		if ok, msg := validation.ValidateUsername(req.Username); !ok {
			return response.BadRequest(c, msg)
		}
	}

	user, err := h.users.Update(c.Context(), services.UpdateUserInput{
		ID:          uint(id),
		Username:    req.Username,
		FullName:    req.FullName,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, services.ErrUsernameTaken):
			return response.Conflict(c, "Username already exists")
		}
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.SuccessWithMessage(c, "User updated successfully", toUserResponse(user))
}

// DeleteUser handles DELETE /api/users/:id. Users may only delete their own
// account.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	if callerID != uint(id) {
		return response.Forbidden(c, "Cannot delete another user's account")
	}

	if err := h.users.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted successfully", nil)
}
