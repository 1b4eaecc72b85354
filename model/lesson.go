package model

import "time"

// Lesson is a single unit of course content. LessonOrder is the 1-based
// position within the course sequence, unique per course.
type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CourseID    uint      `gorm:"not null;index;uniqueIndex:idx_course_lesson_order" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	VideoURL    string    `gorm:"type:varchar(512)" json:"video_url"`
	LessonOrder int       `gorm:"not null;uniqueIndex:idx_course_lesson_order" json:"lesson_order"`

	// Relationships
	Course      Course       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}
