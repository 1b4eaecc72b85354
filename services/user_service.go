package services

import (
	"context"
	"errors"
	"strings"

	"online-learning-api/model"
	"online-learning-api/utils/auth"
)

// UserStore is the credential-store contract the user service depends on.
// Lookups return ErrNotFound on miss; Save is an upsert keyed by id.
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
}

// RegisterInput carries a registration candidate
type RegisterInput struct {
	Username string
	FullName string
	Password string
	Role     model.Role
}

// UpdateUserInput carries a profile update. Password is the current password
// and must verify; NewPassword, when set, rotates hash and salt.
type UpdateUserInput struct {
	ID          uint
	Username    string
	FullName    string
	Password    string
	NewPassword string
}

// UserService verifies credentials and manages user records
type UserService struct {
	store UserStore
}

// NewUserService creates a user service over the given store
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Authenticate verifies a username/password pair and returns the identity.
// Every failure mode collapses into ErrInvalidCredentials so callers cannot
// distinguish an unknown user from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password, user.PasswordSalt); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Register creates a new user with a fresh salt and derived hash. Username
// availability is decided by the lookup itself: only a genuine miss counts as
// free, any other lookup failure aborts registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	_, err := s.store.FindByUsername(ctx, in.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Role:         in.Role,
		PasswordHash: auth.HashPassword(in.Password, salt),
		PasswordSalt: salt,
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update applies a profile update after re-verifying the current password.
// A username change re-checks availability; a new password gets a new salt.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (*model.User, error) {
	user, err := s.store.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, in.Password, user.PasswordSalt); err != nil {
		return nil, ErrInvalidCredentials
	}

	if in.Username != "" && in.Username != user.Username {
		taken, err := s.store.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = in.Username
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}

	if in.NewPassword != "" {
		salt, err := auth.GenerateSalt()
		if err != nil {
			return nil, err
		}
		user.PasswordSalt = salt
		user.PasswordHash = auth.HashPassword(in.NewPassword, salt)
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByID returns a user by id
func (s *UserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.store.FindByID(ctx, id)
}

// FindByUsername returns a user by username
func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.store.FindByUsername(ctx, username)
}

// FindAll returns every user record
func (s *UserService) FindAll(ctx context.Context) ([]model.User, error) {
	return s.store.FindAll(ctx)
}

// Delete removes a user by id
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
