package assignment

import (
	"errors"
	"strconv"
	"time"

	"online-learning-api/model"
	"online-learning-api/services/storage"
	"online-learning-api/utils/pdfvalidation"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AssignmentHandler handles assignment-related requests
type AssignmentHandler struct {
	db        *gorm.DB
	store     storage.Storage
	validator *validation.Validator
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(db *gorm.DB, store storage.Storage) *AssignmentHandler {
	return &AssignmentHandler{
		db:        db,
		store:     store,
		validator: validation.NewValidator(),
	}
}

// ListByLesson handles GET /api/lessons/:lessonId/assignments
func (h *AssignmentHandler) ListByLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	var lesson model.Lesson
	if err := h.db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to fetch lesson")
	}

	var assignments []model.Assignment
	if err := h.db.Where("lesson_id = ?", lesson.ID).
		Order("id").
		Find(&assignments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch assignments")
	}

	return response.Success(c, assignments)
}

// GetAssignment handles GET /api/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *fiber.Ctx) error {
	id := c.Params("id")

	var assignment model.Assignment
	if err := h.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	return response.Success(c, assignment)
}

// CreateAssignment handles POST /api/assignments (admin only). The body is
// multipart: lessonId, title, description and dueDate fields plus an optional
// PDF attachment.
func (h *AssignmentHandler) CreateAssignment(c *fiber.Ctx) error {
	lessonID, err := strconv.ParseUint(c.FormValue("lessonId"), 10, 32)
	if err != nil || lessonID == 0 {
		return response.BadRequest(c, "lessonId is required")
	}

	title := validation.SanitizeString(c.FormValue("title"))
	if title == "" {
		return response.BadRequest(c, "Title is required")
	}
	description := validation.SanitizeString(c.FormValue("description"))

	dueDate, err := parseDueDate(c.FormValue("dueDate"))
	if err != nil {
		return response.BadRequest(c, "dueDate must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}

	var lesson model.Lesson
	if err := h.db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to verify lesson")
	}

	assignment := model.Assignment{
		LessonID:    lesson.ID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}

	if file, err := c.FormFile("attachment"); err == nil {
		result, err := pdfvalidation.ValidatePDFFile(file, pdfvalidation.AttachmentLimits)
		if err != nil {
			return response.InternalServerError(c, "Failed to validate attachment")
		}
		if !result.Valid {
			return response.BadRequest(c, result.Error)
		}

		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read attachment")
		}
		defer src.Close()

		key := storage.GenerateKey("assignments", file.Filename)
		if _, err := h.store.Save(c.Context(), key, src, "application/pdf"); err != nil {
			return response.InternalServerError(c, "Failed to store attachment")
		}
		assignment.AttachmentPath = key
	}

	if err := h.db.Create(&assignment).Error; err != nil {
		return response.InternalServerError(c, "Failed to create assignment")
	}

	return response.Created(c, assignment)
}

// UpdateAssignment handles PUT /api/assignments/:id (admin only)
func (h *AssignmentHandler) UpdateAssignment(c *fiber.Ctx) error {
	id := c.Params("id")

	var assignment model.Assignment
	if err := h.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	if title := validation.SanitizeString(c.FormValue("title")); title != "" {
		assignment.Title = title
	}
	if description := validation.SanitizeString(c.FormValue("description")); description != "" {
		assignment.Description = description
	}
	if raw := c.FormValue("dueDate"); raw != "" {
		dueDate, err := parseDueDate(raw)
		if err != nil {
			return response.BadRequest(c, "dueDate must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		assignment.DueDate = dueDate
	}

	if file, err := c.FormFile("attachment"); err == nil {
		result, err := pdfvalidation.ValidatePDFFile(file, pdfvalidation.AttachmentLimits)
		if err != nil {
			return response.InternalServerError(c, "Failed to validate attachment")
		}
		if !result.Valid {
			return response.BadRequest(c, result.Error)
		}

		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read attachment")
		}
		defer src.Close()

		key := storage.GenerateKey("assignments", file.Filename)
		if _, err := h.store.Save(c.Context(), key, src, "application/pdf"); err != nil {
			return response.InternalServerError(c, "Failed to store attachment")
		}

		if assignment.AttachmentPath != "" {
			h.store.Delete(c.Context(), assignment.AttachmentPath)
		}
		assignment.AttachmentPath = key
	}

	if err := h.db.Save(&assignment).Error; err != nil {
		return response.InternalServerError(c, "Failed to update assignment")
	}

	return response.SuccessWithMessage(c, "Assignment updated successfully", assignment)
}

// DeleteAssignment handles DELETE /api/assignments/:id (admin only)
func (h *AssignmentHandler) DeleteAssignment(c *fiber.Ctx) error {
	id := c.Params("id")

	var assignment model.Assignment
	if err := h.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	if err := h.db.Delete(&assignment).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete assignment")
	}

	if assignment.AttachmentPath != "" {
		h.store.Delete(c.Context(), assignment.AttachmentPath)
	}

	return response.SuccessWithMessage(c, "Assignment deleted successfully", nil)
}

// GetAttachment handles GET /api/assignments/:id/attachment, streaming the
// stored PDF.
func (h *AssignmentHandler) GetAttachment(c *fiber.Ctx) error {
	id := c.Params("id")

	var assignment model.Assignment
	if err := h.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	if assignment.AttachmentPath == "" {
		return response.NotFound(c, "Assignment has no attachment")
	}

	data, err := h.store.Load(c.Context(), assignment.AttachmentPath)
	if err != nil {
		return response.NotFound(c, "Attachment not found")
	}

	c.Set("Content-Type", "application/pdf")
	return c.Send(data)
}

// parseDueDate accepts either a full timestamp or a bare date
func parseDueDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
