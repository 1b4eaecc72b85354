package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto the
// response taxonomy: not-found and conflict stay distinct from auth failures,
// and anything else surfaces as a generic server error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrAlreadyEnrolled    = errors.New("user already enrolled in course")
)
