package services

import (
	"context"
	"errors"
	"testing"

	"online-learning-api/model"

	"online-learning-api/utils/auth"
)

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}, nextID: 1}
}

func (s *fakeUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeUserStore) FindAll(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) Save(ctx context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uint) error {
	delete(s.users, id)
	return nil
}

func mustRegister(t *testing.T, svc *UserService, username, password string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		FullName: "Test User",
		Password: password,
		Role:     model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", username, err)
	}
	return user
}

func TestRegisterStoresDerivedCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	user := mustRegister(t, svc, "alice", "correct horse")

	if user.ID == 0 {
		t.Error("registered user should get an id")
	}
	if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
		t.Error("password must be stored as a derived hash")
	}
	if len(user.PasswordSalt) != auth.SaltLength {
		t.Errorf("salt length = %d, want %d", len(user.PasswordSalt), auth.SaltLength)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	mustRegister(t, svc, "alice", "correct horse")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		FullName: "Someone Else",
		Password: "other password",
		Role:     model.RoleStudent,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterSaltsAreUnique(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	a := mustRegister(t, svc, "alice", "same password")
	b := mustRegister(t, svc, "bob", "same password")

	if string(a.PasswordSalt) == string(b.PasswordSalt) {
		t.Error("each registration must get its own salt")
	}
	if a.PasswordHash == b.PasswordHash {
		t.Error("same password with different salts must hash differently")
	}
}

func TestAuthenticate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	registered := mustRegister(t, svc, "alice", "correct horse")

	user, err := svc.Authenticate(context.Background(), "alice", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authenticated id = %d, want %d", user.ID, registered.ID)
	}

	// Wrong password and unknown user collapse into the same error
	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "   "); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("blank password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateRequiresCurrentPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	user := mustRegister(t, svc, "alice", "correct horse")

	_, err := svc.Update(context.Background(), UpdateUserInput{
		ID:       user.ID,
		FullName: "New Name",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateRotatesPasswordWithNewSalt(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	before := mustRegister(t, svc, "alice", "correct horse")

	after, err := svc.Update(context.Background(), UpdateUserInput{
		ID:          before.ID,
		Password:    "correct horse",
		NewPassword: "battery staple",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if string(after.PasswordSalt) == string(before.PasswordSalt) {
		t.Error("password change must generate a fresh salt")
	}
	if after.PasswordHash == before.PasswordHash {
		t.Error("password change must change the stored hash")
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "battery staple"); err != nil {
		t.Errorf("new password should authenticate, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password should be rejected, got %v", err)
	}
}

func TestUpdateUsernameConflict(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	mustRegister(t, svc, "alice", "correct horse")
	bob := mustRegister(t, svc, "bob", "other password")

	_, err := svc.Update(context.Background(), UpdateUserInput{
		ID:       bob.ID,
		Username: "alice",
		Password: "other password",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
