package model

import "time"

// Answer is a reference answer published for an assignment
type Answer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AssignmentID uint      `gorm:"not null;index" json:"assignment_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Content      string    `gorm:"type:text" json:"content"`
	Time         time.Time `json:"time"`

	// Relationships
	Assignment Assignment `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}
