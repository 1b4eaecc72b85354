package services

import (
	"context"
	"errors"
	"time"

	"online-learning-api/model"
)

// EnrollmentStore is the persistence contract for enrollments. Create must
// surface a store-level unique violation on (userID, courseID) as
// ErrAlreadyEnrolled; the unique index, not the Exists check, is what keeps
// concurrent enrollments down to one row.
type EnrollmentStore interface {
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
	Create(ctx context.Context, enrollment *model.Enrollment) error
	FindByID(ctx context.Context, id uint) (*model.Enrollment, error)
	Delete(ctx context.Context, id uint) error
}

// SubmissionStore resolves the most recent submission a user made within a
// course, joined through assignment and lesson. A miss returns ErrNotFound.
type SubmissionStore interface {
	FindLatest(ctx context.Context, userID, courseID uint) (*model.Submission, error)
}

// EnrollmentService decides enroll-vs-resume and computes the next lesson
// position from submission history.
type EnrollmentService struct {
	enrollments EnrollmentStore
	submissions SubmissionStore
}

// NewEnrollmentService creates an enrollment service
func NewEnrollmentService(enrollments EnrollmentStore, submissions SubmissionStore) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		submissions: submissions,
	}
}

// ProcessEnrollment enrolls the user if needed and returns the lesson position
// to resume at: 1 for a fresh enrollment or when no work was submitted yet,
// otherwise the order of the last submitted lesson plus one. The result is
// returned as computed even if it points past the last lesson; the caller
// decides how to interpret an out-of-range position.
func (s *EnrollmentService) ProcessEnrollment(ctx context.Context, courseID, userID uint) (int, error) {
	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}

	if !enrolled {
		enrollment := &model.Enrollment{
			UserID:         userID,
			CourseID:       courseID,
			EnrollmentTime: time.Now(),
		}
		err := s.enrollments.Create(ctx, enrollment)
		if err == nil {
			return 1, nil
		}
		// A concurrent request won the insert; fall through and resume.
		if !errors.Is(err, ErrAlreadyEnrolled) {
			return 0, err
		}
	}

	latest, err := s.submissions.FindLatest(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 1, nil
		}
		return 0, err
	}

	return latest.Assignment.Lesson.LessonOrder + 1, nil
}

// FindByID returns an enrollment by id
func (s *EnrollmentService) FindByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	return s.enrollments.FindByID(ctx, id)
}

// Delete removes an enrollment by id
func (s *EnrollmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.enrollments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.enrollments.Delete(ctx, id)
}
