package review

import (
	"errors"
	"strconv"
	"time"

	"online-learning-api/model"
	"online-learning-api/utils/middleware"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReviewHandler handles course review requests
type ReviewHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateReviewRequest represents the body for reviewing a course
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// CreateReview handles POST /api/courses/:courseId/reviews. The reviewer is
// the token identity.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("courseId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to verify course")
	}

	review := model.Review{
		CourseID:   course.ID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    validation.SanitizeString(req.Comment),
		ReviewTime: time.Now(),
	}

	if err := h.db.Create(&review).Error; err != nil {
		return response.InternalServerError(c, "Failed to create review")
	}

	// Refresh the cached course rating right away; the hourly job is the
	// backstop for anything missed here.
	h.refreshCourseRating(course.ID)

	return response.Created(c, review)
}

// ListByCourse handles GET /api/courses/:courseId/reviews
func (h *ReviewHandler) ListByCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var reviews []model.Review
	if err := h.db.Where("course_id = ?", course.ID).
		Order("review_time DESC").
		Find(&reviews).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch reviews")
	}

	return response.Success(c, reviews)
}

// DeleteReview handles DELETE /api/reviews/:id. Users can delete their own
// reviews; admins can delete any.
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review model.Review
	if err := h.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.InternalServerError(c, "Failed to fetch review")
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if review.UserID != userID && !role.Is(model.RoleAdmin) {
		return response.Forbidden(c, "Cannot delete another user's review")
	}

	if err := h.db.Delete(&review).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete review")
	}

	h.refreshCourseRating(review.CourseID)

	return response.SuccessWithMessage(c, "Review deleted successfully", nil)
}

// refreshCourseRating recomputes a course's average rating from its reviews.
// A course with no reviews falls back to the unrated sentinel (-1).
func (h *ReviewHandler) refreshCourseRating(courseID uint) {
	var avg *float64
	if err := h.db.Model(&model.Review{}).
		Where("course_id = ?", courseID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return
	}

	rating := -1.0
	if avg != nil {
		rating = *avg
	}

	h.db.Model(&model.Course{}).Where("id = ?", courseID).Update("rating", rating)
}
