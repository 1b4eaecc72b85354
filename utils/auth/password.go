package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

const (
	// SaltLength is the per-user salt size in bytes
	SaltLength = 16
	// MinPasswordLength is the minimum password length
	MinPasswordLength = 8

	pbkdf2Iterations = 210_000
	pbkdf2KeyLength  = 32
)

// GenerateSalt generates a cryptographically secure random salt
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the stored hash from a password and its salt. The
// derivation is deterministic so verification can recompute and compare.
func HashPassword(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the hash with the stored salt and compares it in
// constant time against the stored value.
func VerifyPassword(storedHash, password string, salt []byte) error {
	computed := HashPassword(password, salt)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// IsPasswordValid checks if password meets minimum requirements
func IsPasswordValid(password string) bool {
	return len(password) >= MinPasswordLength
}
