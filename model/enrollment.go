package model

import "time"

// Enrollment links a user to a course they are taking. The composite unique
// index is the at-most-one-enrollment guarantee under concurrent requests;
// application-level existence checks alone cannot provide it.
type Enrollment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID       uint      `gorm:"not null;uniqueIndex:idx_user_course" json:"course_id"`
	EnrollmentTime time.Time `gorm:"not null" json:"enrollment_time"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
