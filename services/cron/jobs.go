package cron

import (
	"log"
	"time"

	"online-learning-api/model"
)

// activityLogRetention is how long audit lines are kept before pruning
const activityLogRetention = 180 * 24 * time.Hour

// RecomputeCourseRatings refreshes every course's cached rating from its
// reviews. Courses without reviews keep the unrated sentinel (-1), so the
// update only touches courses that have at least one review.
func (m *CronManager) RecomputeCourseRatings() {
	type ratingRow struct {
		CourseID uint
		Avg      float64
	}

	var rows []ratingRow
	err := m.db.Model(&model.Review{}).
		Select("course_id, AVG(rating) as avg").
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[CRON] Error in job: recompute_course_ratings - %v", err)
		return
	}

	updated := 0
	for _, row := range rows {
		result := m.db.Model(&model.Course{}).
			Where("id = ?", row.CourseID).
			Update("rating", row.Avg)
		if result.Error != nil {
			log.Printf("[CRON] Error updating rating for course %d: %v", row.CourseID, result.Error)
			continue
		}
		updated++
	}

	log.Printf("[CRON] Completed job: recompute_course_ratings - updated %d courses", updated)
}

// PruneActivityLogs deletes audit lines past the retention window
func (m *CronManager) PruneActivityLogs() {
	cutoff := time.Now().Add(-activityLogRetention)

	result := m.db.Where("log_time < ?", cutoff).Delete(&model.ActivityLog{})
	if result.Error != nil {
		log.Printf("[CRON] Error in job: prune_activity_logs - %v", result.Error)
		return
	}

	log.Printf("[CRON] Completed job: prune_activity_logs - removed %d entries", result.RowsAffected)
}
