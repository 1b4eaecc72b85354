package database

import (
	"context"
	"errors"

	"online-learning-api/model"
	"online-learning-api/services"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for a unique index violation
const uniqueViolation = "23505"

// isDuplicateKey reports whether the insert hit the (user_id, course_id)
// unique index. Both GORM's translated error and the raw pgx driver error
// are recognized.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

// EnrollmentRepo is the GORM-backed enrollment store
type EnrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates an enrollment repository
func NewEnrollmentRepo(db *gorm.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// Exists reports whether the user is enrolled in the course
func (r *EnrollmentRepo) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new enrollment. The unique index on (user_id, course_id)
// is the source of truth for duplicates; a violation maps to
// services.ErrAlreadyEnrolled so callers can treat the user as enrolled.
func (r *EnrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return services.ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

// FindByID returns the enrollment with the given id
func (r *EnrollmentRepo) FindByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// Delete removes the enrollment by id
func (r *EnrollmentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Enrollment{}, id).Error
}
