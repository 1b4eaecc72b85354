package submission

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

// SubmissionHandler handles assignment submission requests
type SubmissionHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(db *gorm.DB) *SubmissionHandler {
	return &SubmissionHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateSubmissionRequest represents the body for submitting work
type CreateSubmissionRequest struct {
	AssignmentID uint   `json:"assignmentId" validate:"required,min=1"`
	Content      string `json:"content" validate:"required"`
}

// GradeRequest represents the body for grading a submission
type GradeRequest struct {
	Grade int `json:"grade" validate:"gte=0,lte=100"`
}

// CreateSubmission handles POST /api/submissions. The submitter is the token
// identity; the submission date is stamped server-side.
func (h *SubmissionHandler) CreateSubmission(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateSubmissionRequest
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

	submission := model.Submission{
		UserID:         userID,
		AssignmentID:   assignment.ID,
		SubmissionDate: time.Now(),
		Content:        req.Content,
	}

	if err := h.db.Create(&submission).Error; err != nil {
		return response.InternalServerError(c, "Failed to create submission")
	}

	return response.Created(c, submission)
}

// ListByAssignment handles GET /api/assignments/:assignmentId/submissions
// (admin only)
func (h *SubmissionHandler) ListByAssignment(c *fiber.Ctx) error {
	assignmentID := c.Params("assignmentId")

	var assignment model.Assignment
	if err := h.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	var submissions []model.Submission
	if err := h.db.Where("assignment_id = ?", assignment.ID).
		Order("submission_date DESC").
		Find(&submissions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch submissions")
	}

	return response.Success(c, submissions)
}

// GetSubmission handles GET /api/submissions/:id. Students can only read
// their own submissions; admins can read any.
func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	id := c.Params("id")

	var submission model.Submission
	if err := h.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Submission not found")
		}
		return response.InternalServerError(c, "Failed to fetch submission")
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if submission.UserID != userID && !role.Is(model.RoleAdmin) {
		return response.Forbidden(c, "Cannot view another user's submission")
	}

	return response.Success(c, submission)
}

// GradeSubmission handles PUT /api/submissions/:id/grade (admin only)
func (h *SubmissionHandler) GradeSubmission(c *fiber.Ctx) error {
	id := c.Params("id")

	var req GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var submission model.Submission
	if err := h.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Submission not found")
		}
		return response.InternalServerError(c, "Failed to fetch submission")
	}

	submission.Grade = req.Grade
	if err := h.db.Save(&submission).Error; err != nil {
		return response.InternalServerError(c, "Failed to grade submission")
	}

	return response.SuccessWithMessage(c, "Submission graded successfully", submission)
}

// DeleteSubmission handles DELETE /api/submissions/:id. Students can delete
// their own submissions; admins can delete any.
func (h *SubmissionHandler) DeleteSubmission(c *fiber.Ctx) error {
	id := c.Params("id")

	var submission model.Submission
	if err := h.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Submission not found")
		}
		return response.InternalServerError(c, "Failed to fetch submission")
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if submission.UserID != userID && !role.Is(model.RoleAdmin) {
		return response.Forbidden(c, "Cannot delete another user's submission")
	}

	if err := h.db.Delete(&submission).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete submission")
	}

	return response.SuccessWithMessage(c, "Submission deleted successfully", nil)
}
