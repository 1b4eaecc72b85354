package model

import "time"

// User represents a registered user in the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName     string    `gorm:"not null" json:"fullname"`
	Role         Role      `gorm:"type:varchar(20);default:'student'" json:"role"`
	PasswordHash string    `gorm:"not null" json:"-"`            // Never expose password in JSON
	PasswordSalt []byte    `gorm:"not null;type:bytea" json:"-"` // Per-user salt for key derivation

	// Relationships
	Enrollments []Enrollment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Submissions []Submission  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews     []Review      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Activity    []ActivityLog `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
