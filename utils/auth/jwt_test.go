package auth

import (
	"errors"
	"testing"
	"time"

	"online-learning-api/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, expiry time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		Secret: testSecret,
		Expiry: expiry,
		Issuer: "test",
		Prefix: "Bearer ",
	})
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	return svc
}

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	_, err := NewTokenService(TokenConfig{Secret: "too-short"})
	if !errors.Is(err, ErrKeyTooShort) {
		t.Errorf("expected ErrKeyTooShort, got %v", err)
	}
}

func TestGenerateAndExtractClaims(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Generate("alice", model.RoleAdmin, 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !svc.Validate(token) {
		t.Fatal("freshly generated token should validate")
	}

	subject, err := svc.Subject(token)
	if err != nil {
		t.Fatalf("Subject failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject = %q, want %q", subject, "alice")
	}

	role, err := svc.Role(token)
	if err != nil {
		t.Fatalf("Role failed: %v", err)
	}
	if role != model.RoleAdmin {
		t.Errorf("role = %q, want %q", role, model.RoleAdmin)
	}

	userID, err := svc.UserID(token)
	if err != nil {
		t.Fatalf("UserID failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if svc.Validate(token) {
			t.Errorf("Validate(%q) = true, want false", token)
		}
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Generate("alice", model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if svc.Validate(tampered) {
		t.Error("tampered token should not validate")
	}
	if _, err := svc.Subject(tampered); err == nil {
		t.Error("Subject on tampered token should error")
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other, err := NewTokenService(TokenConfig{
		Secret: "ffffffffffffffffffffffffffffffff",
		Expiry: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}

	token, err := other.Generate("alice", model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if svc.Validate(token) {
		t.Error("token signed with a different key should not validate")
	}
}

func TestExpiredTokenReturnsExpiredError(t *testing.T) {
	svc := newTestService(t, time.Hour)
	// Build an already expired token by signing with a negative offset
	svc.config.Expiry = -time.Minute

	token, err := svc.Generate("alice", model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if svc.Validate(token) {
		t.Error("expired token should not validate")
	}
	if _, err := svc.ParseClaims(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestClaimsRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Generate("bob", model.RoleStudent, 7)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := svc.ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims failed: %v", err)
	}
	if claims.Subject != "bob" || claims.Role != model.RoleStudent || claims.UserID != 7 {
		t.Errorf("claims = %+v, want subject bob, role student, userID 7", claims)
	}
	if claims.Issuer != "test" {
		t.Errorf("issuer = %q, want %q", claims.Issuer, "test")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected iat and exp to be set")
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Errorf("token lifetime = %v, want %v", lifetime, time.Hour)
	}
}
