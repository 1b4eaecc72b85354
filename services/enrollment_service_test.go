package services

import (
	"context"
	"testing"

	"online-learning-api/model"
)

// fakeEnrollmentStore is an in-memory EnrollmentStore keyed by
// (userID, courseID), enforcing the same uniqueness the database index does.
type fakeEnrollmentStore struct {
	rows       map[[2]uint]*model.Enrollment
	nextID     uint
	createErr  error
	createHook func()
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{rows: map[[2]uint]*model.Enrollment{}, nextID: 1}
}

func (s *fakeEnrollmentStore) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	_, ok := s.rows[[2]uint{userID, courseID}]
	return ok, nil
}

func (s *fakeEnrollmentStore) Create(ctx context.Context, e *model.Enrollment) error {
	if s.createHook != nil {
		s.createHook()
	}
	if s.createErr != nil {
		return s.createErr
	}
	key := [2]uint{e.UserID, e.CourseID}
	if _, ok := s.rows[key]; ok {
		return ErrAlreadyEnrolled
	}
	e.ID = s.nextID
	s.nextID++
	copied := *e
	s.rows[key] = &copied
	return nil
}

func (s *fakeEnrollmentStore) FindByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	for _, e := range s.rows {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeEnrollmentStore) Delete(ctx context.Context, id uint) error {
	for key, e := range s.rows {
		if e.ID == id {
			delete(s.rows, key)
			return nil
		}
	}
	return ErrNotFound
}

// fakeSubmissionStore returns a canned latest submission per (user, course)
type fakeSubmissionStore struct {
	latest map[[2]uint]*model.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{latest: map[[2]uint]*model.Submission{}}
}

func (s *fakeSubmissionStore) FindLatest(ctx context.Context, userID, courseID uint) (*model.Submission, error) {
	sub, ok := s.latest[[2]uint{userID, courseID}]
	if !ok {
		return nil, ErrNotFound
	}
	return sub, nil
}

func (s *fakeSubmissionStore) setLatest(userID, courseID uint, lessonOrder int) {
	s.latest[[2]uint{userID, courseID}] = &model.Submission{
		UserID: userID,
		Assignment: model.Assignment{
			Lesson: model.Lesson{LessonOrder: lessonOrder},
		},
	}
}

func TestProcessEnrollmentFirstTime(t *testing.T) {
	enrollments := newFakeEnrollmentStore()
	submissions := newFakeSubmissionStore()
	svc := NewEnrollmentService(enrollments, submissions)

	order, err := svc.ProcessEnrollment(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("ProcessEnrollment failed: %v", err)
	}
	if order != 1 {
		t.Errorf("lesson order = %d, want 1 for a fresh enrollment", order)
	}

	enrolled, _ := enrollments.Exists(context.Background(), 1, 10)
	if !enrolled {
		t.Error("enrollment row should have been created")
	}
}

func TestProcessEnrollmentIsIdempotent(t *testing.T) {
	enrollments := newFakeEnrollmentStore()
	submissions := newFakeSubmissionStore()
	svc := NewEnrollmentService(enrollments, submissions)

	if _, err := svc.ProcessEnrollment(context.Background(), 10, 1); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	order, err := svc.ProcessEnrollment(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if order != 1 {
		t.Errorf("lesson order = %d, want 1 with no submissions", order)
	}
	if len(enrollments.rows) != 1 {
		t.Errorf("enrollment rows = %d, want 1", len(enrollments.rows))
	}
}

func TestProcessEnrollmentResumesAfterLastSubmission(t *testing.T) {
	enrollments := newFakeEnrollmentStore()
	submissions := newFakeSubmissionStore()
	svc := NewEnrollmentService(enrollments, submissions)

	if _, err := svc.ProcessEnrollment(context.Background(), 10, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	submissions.setLatest(1, 10, 3)

	order, err := svc.ProcessEnrollment(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("ProcessEnrollment failed: %v", err)
	}
	if order != 4 {
		t.Errorf("lesson order = %d, want 4 (last submitted lesson 3 + 1)", order)
	}
}

func TestProcessEnrollmentReturnsPositionPastLastLesson(t *testing.T) {
	// The computed position is reported as-is, even when the last lesson of
	// the course has been submitted.
	enrollments := newFakeEnrollmentStore()
	submissions := newFakeSubmissionStore()
	svc := NewEnrollmentService(enrollments, submissions)

	if _, err := svc.ProcessEnrollment(context.Background(), 10, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	submissions.setLatest(1, 10, 12)

	order, err := svc.ProcessEnrollment(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("ProcessEnrollment failed: %v", err)
	}
	if order != 13 {
		t.Errorf("lesson order = %d, want 13", order)
	}
}

func TestProcessEnrollmentLostInsertRace(t *testing.T) {
	// A concurrent request wins the insert between the Exists check and
	// Create; the loser must treat the user as enrolled and resume.
	enrollments := newFakeEnrollmentStore()
	submissions := newFakeSubmissionStore()
	svc := NewEnrollmentService(enrollments, submissions)

	enrollments.createHook = func() {
		// Simulate the competing insert landing first
		enrollments.createHook = nil
		enrollments.rows[[2]uint{1, 10}] = &model.Enrollment{ID: 99, UserID: 1, CourseID: 10}
	}

	order, err := svc.ProcessEnrollment(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("ProcessEnrollment failed: %v", err)
	}
	if order != 1 {
		t.Errorf("lesson order = %d, want 1", order)
	}
	if len(enrollments.rows) != 1 {
		t.Errorf("enrollment rows = %d, want exactly 1 after the race", len(enrollments.rows))
	}
}

func TestProcessEnrollmentPropagatesStoreErrors(t *testing.T) {
	enrollments := newFakeEnrollmentStore()
	submissions := newFakeSubmissionStore()
	svc := NewEnrollmentService(enrollments, submissions)

	enrollments.createErr = context.DeadlineExceeded
	if _, err := svc.ProcessEnrollment(context.Background(), 10, 1); err == nil {
		t.Error("store failure should surface as an error")
	}
}
