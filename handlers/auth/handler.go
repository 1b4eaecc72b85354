package auth

import (
	"online-learning-api/services"
	"online-learning-api/utils/auth"
	"online-learning-api/utils/middleware"
	"online-learning-api/utils/validation"
)

// AuthHandler handles login and registration
type AuthHandler struct {
	users      *services.UserService
	tokens     *auth.TokenService
	activity   *services.ActivityService
	bruteForce *middleware.BruteForceProtection
	validator  *validation.Validator
}

// NewAuthHandler creates a new auth handler. bruteForce may be nil when Redis
// is not configured.
func NewAuthHandler(users *services.UserService, tokens *auth.TokenService, activity *services.ActivityService, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		users:      users,
		tokens:     tokens,
		activity:   activity,
		bruteForce: bruteForce,
		validator:  validation.NewValidator(),
	}
}

// AuthResponse is the body returned by both login and register. The same
// token is also mirrored into the Authorization response header.
type AuthResponse struct {
	Token string `json:"token"`
	ID    uint   `json:"id"`
	Role  string `json:"role"`
}
