package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyRecognizesDriverUniqueViolation(t *testing.T) {
	// The postgres driver surfaces a unique-index violation as *pgconn.PgError
	driverErr := &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "idx_user_course"`,
	}
	if !isDuplicateKey(driverErr) {
		t.Errorf("unique violation %v not recognized as duplicate key", driverErr)
	}

	// GORM may also wrap the driver error before it reaches the repository
	wrapped := fmt.Errorf("create enrollment: %w", driverErr)
	if !isDuplicateKey(wrapped) {
		t.Error("wrapped unique violation not recognized as duplicate key")
	}
}

func TestIsDuplicateKeyRecognizesTranslatedError(t *testing.T) {
	if !isDuplicateKey(gorm.ErrDuplicatedKey) {
		t.Error("gorm.ErrDuplicatedKey not recognized as duplicate key")
	}
	if !isDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)) {
		t.Error("wrapped gorm.ErrDuplicatedKey not recognized as duplicate key")
	}
}

func TestIsDuplicateKeyIgnoresOtherErrors(t *testing.T) {
	cases := []error{
		nil,
		errors.New("connection refused"),
		gorm.ErrRecordNotFound,
		&pgconn.PgError{Code: "23503", Message: "foreign key violation"},
	}
	for _, err := range cases {
		if isDuplicateKey(err) {
			t.Errorf("isDuplicateKey(%v) = true, want false", err)
		}
	}
}
