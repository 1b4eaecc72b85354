package model

import "time"

// Submission is a student's answer to an assignment. SubmissionDate ordering
// drives the enrollment resume-position computation.
type Submission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	AssignmentID   uint      `gorm:"not null;index" json:"assignment_id"`
	SubmissionDate time.Time `gorm:"not null;index" json:"submission_date"`
	Content        string    `gorm:"type:text" json:"content"`
	Grade          int       `gorm:"default:0" json:"grade"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Assignment Assignment `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"assignment,omitempty"`
}
