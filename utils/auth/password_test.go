package auth

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateSaltLengthAndUniqueness(t *testing.T) {
	a, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(a) != SaltLength {
		t.Errorf("salt length = %d, want %d", len(a), SaltLength)
	}

	b, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two generated salts should differ")
	}
}

func TestHashPasswordDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	h1 := HashPassword("correct horse battery staple", salt)
	h2 := HashPassword("correct horse battery staple", salt)
	if h1 != h2 {
		t.Error("same password and salt should hash identically")
	}

	if HashPassword("other password", salt) == h1 {
		t.Error("different passwords should not collide")
	}
	if HashPassword("correct horse battery staple", []byte("fedcba9876543210")) == h1 {
		t.Error("different salts should produce different hashes")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	stored := HashPassword("hunter2hunter2", salt)

	if err := VerifyPassword(stored, "hunter2hunter2", salt); err != nil {
		t.Errorf("correct password should verify, got %v", err)
	}
	if err := VerifyPassword(stored, "wrong password", salt); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("short") {
		t.Error("7-character password should be rejected")
	}
	if !IsPasswordValid("12345678") {
		t.Error("8-character password should be accepted")
	}
}
