package database

import (
	"context"
	"errors"

	"online-learning-api/model"
	"online-learning-api/services"

	"gorm.io/gorm"
)

// SubmissionRepo is the GORM-backed submission store
type SubmissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates a submission repository
func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// FindLatest returns the user's most recent submission inside the course,
// joined through assignment and lesson so the caller can read the lesson
// order. Ties on submission_date resolve to whichever row the database
// returns first.
func (r *SubmissionRepo) FindLatest(ctx context.Context, userID, courseID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN lessons ON lessons.id = assignments.lesson_id").
		Where("submissions.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Order("submissions.submission_date DESC").
		Preload("Assignment.Lesson").
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}
