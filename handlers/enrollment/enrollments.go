package enrollment

import (
	"errors"
	"strconv"

	"online-learning-api/model"
	"online-learning-api/services"
	"online-learning-api/utils/middleware"
	"online-learning-api/utils/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollmentHandler handles enrollment and course-resume requests
type EnrollmentHandler struct {
	db          *gorm.DB
	enrollments *services.EnrollmentService
	activity    *services.ActivityService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(db *gorm.DB, enrollments *services.EnrollmentService, activity *services.ActivityService) *EnrollmentHandler {
	return &EnrollmentHandler{
		db:          db,
		enrollments: enrollments,
		activity:    activity,
	}
}

// EnrollResponse carries the lesson position the client should open next
type EnrollResponse struct {
	LessonOrder int    `json:"lessonOrder"`
	Message     string `json:"message"`
}

// ProcessEnrollment handles POST /api/courses/:courseId/enrollments. A first
// call enrolls the user and points at lesson 1; later calls return the
// position after the last submitted lesson.
func (h *EnrollmentHandler) ProcessEnrollment(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("courseId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to verify course")
	}

	lessonOrder, err := h.enrollments.ProcessEnrollment(c.Context(), course.ID, userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to process enrollment")
	}

	if h.activity != nil {
		h.activity.RecordWithMetadata(c.Context(), userID, "enrolled in course", map[string]interface{}{
			"courseId":    course.ID,
			"courseTitle": course.Title,
		})
	}

	return response.Success(c, EnrollResponse{
		LessonOrder: lessonOrder,
		Message:     "Enrollment processed successfully",
	})
}

// GetEnrollment handles GET /api/enrollments/:id. Users can only read their
// own enrollments; admins can read any.
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	enrollment, err := h.enrollments.FindByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to fetch enrollment")
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if enrollment.UserID != userID && !role.Is(model.RoleAdmin) {
		return response.Forbidden(c, "Cannot view another user's enrollment")
	}

	return response.Success(c, enrollment)
}

// DeleteEnrollment handles DELETE /api/enrollments/:id. Users can drop their
// own enrollments; admins can remove any.
func (h *EnrollmentHandler) DeleteEnrollment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	enrollment, err := h.enrollments.FindByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to fetch enrollment")
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if enrollment.UserID != userID && !role.Is(model.RoleAdmin) {
		return response.Forbidden(c, "Cannot remove another user's enrollment")
	}

	if err := h.enrollments.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete enrollment")
	}

	return response.SuccessWithMessage(c, "Enrollment deleted successfully", nil)
}
