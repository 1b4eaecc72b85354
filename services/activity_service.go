package services

import (
	"context"
	"encoding/json"
	"time"

	"online-learning-api/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService writes and reads the audit trail. Recording is best-effort
// from the callers' point of view: a failed log line never fails the mutation
// it describes.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates an activity service
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record writes an audit line for a user action
func (s *ActivityService) Record(ctx context.Context, userID uint, title string) error {
	entry := model.ActivityLog{
		UserID:  userID,
		Title:   title,
		LogTime: time.Now(),
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// RecordWithMetadata writes an audit line with structured detail attached
func (s *ActivityService) RecordWithMetadata(ctx context.Context, userID uint, title string, metadata map[string]interface{}) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	entry := model.ActivityLog{
		UserID:   userID,
		Title:    title,
		LogTime:  time.Now(),
		Metadata: datatypes.JSON(raw),
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// FindAll returns the audit trail, newest first
func (s *ActivityService) FindAll(ctx context.Context) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := s.db.WithContext(ctx).Order("log_time DESC").Find(&logs).Error
	return logs, err
}

// FindByID returns a single audit line
func (s *ActivityService) FindByID(ctx context.Context, id uint) (*model.ActivityLog, error) {
	var entry model.ActivityLog
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Delete removes an audit line by id
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.ActivityLog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
