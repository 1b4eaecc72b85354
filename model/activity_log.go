package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the human-readable audit line written after every mutation:
// who did it, a free-text title, and when.
type ActivityLog struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	UserID   uint           `gorm:"not null;index" json:"user_id"`
	Title    string         `gorm:"not null" json:"title"`
	LogTime  time.Time      `gorm:"not null;index" json:"log_time"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`
}
