package answer

import (
	"errors"
	"time"

	"online-learning-api/model"
	"online-learning-api/utils/middleware"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnswerHandler handles reference answer requests
type AnswerHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(db *gorm.DB) *AnswerHandler {
	return &AnswerHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateAnswerRequest represents the body for publishing an answer
type CreateAnswerRequest struct {
	AssignmentID uint   `json:"assignmentId" validate:"required,min=1"`
	Content      string `json:"content" validate:"required"`
}

// CreateAnswer handles POST /api/answers (admin only). The author is the
// token identity; the publication time is stamped server-side.
func (h *AnswerHandler) CreateAnswer(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var assignment model.Assignment
	if err := h.db.First(&assignment, req.AssignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to verify assignment")
	}

	answer := model.Answer{
		AssignmentID: assignment.ID,
		UserID:       userID,
		Content:      req.Content,
		Time:         time.Now(),
	}

	if err := h.db.Create(&answer).Error; err != nil {
		return response.InternalServerError(c, "Failed to create answer")
	}

	return response.Created(c, answer)
}

// ListByAssignment handles GET /api/assignments/:assignmentId/answers
func (h *AnswerHandler) ListByAssignment(c *fiber.Ctx) error {
	assignmentID := c.Params("assignmentId")

	var assignment model.Assignment
	if err := h.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	var answers []model.Answer
	if err := h.db.Where("assignment_id = ?", assignment.ID).
		Order("time DESC").
		Find(&answers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch answers")
	}

	return response.Success(c, answers)
}

// GetAnswer handles GET /api/answers/:id
func (h *AnswerHandler) GetAnswer(c *fiber.Ctx) error {
	id := c.Params("id")

	var answer model.Answer
	if err := h.db.First(&answer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Answer not found")
		}
		return response.InternalServerError(c, "Failed to fetch answer")
	}

	return response.Success(c, answer)
}

// DeleteAnswer handles DELETE /api/answers/:id (admin only)
func (h *AnswerHandler) DeleteAnswer(c *fiber.Ctx) error {
	id := c.Params("id")

	var answer model.Answer
	if err := h.db.First(&answer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Answer not found")
		}
		return response.InternalServerError(c, "Failed to fetch answer")
	}

	if err := h.db.Delete(&answer).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete answer")
	}

	return response.SuccessWithMessage(c, "Answer deleted successfully", nil)
}
