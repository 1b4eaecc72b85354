package model

import "time"

// Assignment is a graded task attached to a lesson
type Assignment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LessonID       uint      `gorm:"not null;index" json:"lesson_id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	DueDate        time.Time `json:"due_date"`
	AttachmentPath string    `gorm:"type:varchar(512)" json:"attachment_path"` // optional PDF handout

	// Relationships
	Lesson      Lesson       `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"lesson,omitempty"`
	Submissions []Submission `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
	Answers     []Answer     `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}
