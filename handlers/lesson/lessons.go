package lesson

import (
	"errors"

	"online-learning-api/model"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LessonHandler handles lesson-related requests
type LessonHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(db *gorm.DB) *LessonHandler {
	return &LessonHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateLessonRequest represents the body for creating a lesson
type CreateLessonRequest struct {
	CourseID    uint   `json:"courseId" validate:"required,min=1"`
	LessonOrder int    `json:"lessonOrder" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Content     string `json:"content" validate:"omitempty"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,max=2048"`
}

// UpdateLessonRequest represents the body for updating a lesson
type UpdateLessonRequest struct {
	LessonOrder *int   `json:"lessonOrder" validate:"omitempty,min=1"`
	Title       string `json:"title" validate:"omitempty,min=1,max=255"`
	Content     string `json:"content" validate:"omitempty"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,max=2048"`
}

// ListByCourse handles GET /api/courses/:courseId/lessons
func (h *LessonHandler) ListByCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var lessons []model.Lesson
	if err := h.db.Where("course_id = ?", course.ID).
		Order("lesson_order").
		Find(&lessons).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch lessons")
	}

	return response.Success(c, lessons)
}

// GetLesson handles GET /api/lessons/:id
func (h *LessonHandler) GetLesson(c *fiber.Ctx) error {
	id := c.Params("id")

	var lesson model.Lesson
	if err := h.db.Preload("Assignments").First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to fetch lesson")
	}

	return response.Success(c, lesson)
}

// GetByCourseAndOrder handles GET /api/courses/:courseId/lessons/order/:order,
// the lookup used to resume a course at a given position.
func (h *LessonHandler) GetByCourseAndOrder(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	order := c.Params("order")

	var lesson model.Lesson
	if err := h.db.Where("course_id = ? AND lesson_order = ?", courseID, order).
		Preload("Assignments").
		First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to fetch lesson")
	}

	return response.Success(c, lesson)
}

// CreateLesson handles POST /api/lessons (admin only)
func (h *LessonHandler) CreateLesson(c *fiber.Ctx) error {
	var req CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to verify course")
	}

	// The (course_id, lesson_order) unique index rejects duplicate positions
	var existing model.Lesson
	if err := h.db.Where("course_id = ? AND lesson_order = ?", req.CourseID, req.LessonOrder).
		First(&existing).Error; err == nil {
		return response.Conflict(c, "A lesson with this order already exists in the course")
	}

	lesson := model.Lesson{
		CourseID:    req.CourseID,
		LessonOrder: req.LessonOrder,
		Title:       validation.SanitizeString(req.Title),
		Content:     req.Content,
		VideoURL:    validation.SanitizeString(req.VideoURL),
	}

	if err := h.db.Create(&lesson).Error; err != nil {
		return response.InternalServerError(c, "Failed to create lesson")
	}

	return response.Created(c, lesson)
}

// UpdateLesson handles PUT /api/lessons/:id (admin only)
func (h *LessonHandler) UpdateLesson(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var lesson model.Lesson
	if err := h.db.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to fetch lesson")
	}

	if req.LessonOrder != nil && *req.LessonOrder != lesson.LessonOrder {
		var existing model.Lesson
		if err := h.db.Where("course_id = ? AND lesson_order = ? AND id != ?",
			lesson.CourseID, *req.LessonOrder, lesson.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "A lesson with this order already exists in the course")
		}
		lesson.LessonOrder = *req.LessonOrder
	}

	if req.Title != "" {
		lesson.Title = validation.SanitizeString(req.Title)
	}
	if req.Content != "" {
		lesson.Content = req.Content
	}
	if req.VideoURL != "" {
		lesson.VideoURL = validation.SanitizeString(req.VideoURL)
	}

	if err := h.db.Save(&lesson).Error; err != nil {
		return response.InternalServerError(c, "Failed to update lesson")
	}

	return response.SuccessWithMessage(c, "Lesson updated successfully", lesson)
}

// DeleteLesson handles DELETE /api/lessons/:id (admin only)
func (h *LessonHandler) DeleteLesson(c *fiber.Ctx) error {
	id := c.Params("id")

	var lesson model.Lesson
	if err := h.db.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to fetch lesson")
	}

	if err := h.db.Delete(&lesson).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete lesson")
	}

	return response.SuccessWithMessage(c, "Lesson deleted successfully", nil)
}
