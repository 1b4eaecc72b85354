package activity

import (
	"errors"
	"strconv"

	"online-learning-api/services"
	"online-learning-api/utils/response"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles audit trail requests (admin only)
type ActivityHandler struct {
	activity *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// ListLogs handles GET /api/logs
func (h *ActivityHandler) ListLogs(c *fiber.Ctx) error {
	logs, err := h.activity.FindAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch activity logs")
	}
	return response.Success(c, logs)
}

// GetLog handles GET /api/logs/:id
func (h *ActivityHandler) GetLog(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid log id")
	}

	entry, err := h.activity.FindByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "Activity log not found")
		}
		return response.InternalServerError(c, "Failed to fetch activity log")
	}

	return response.Success(c, entry)
}

// DeleteLog handles DELETE /api/logs/:id
func (h *ActivityHandler) DeleteLog(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid log id")
	}

	if err := h.activity.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.NotFound(c, "Activity log not found")
		}
		return response.InternalServerError(c, "Failed to delete activity log")
	}

	return response.SuccessWithMessage(c, "Activity log deleted successfully", nil)
}
