package handlers

import (
	"github.com/gofiber/fiber/v2"

	"online-learning-api/database"
)

// HandleCheckHealth reports service liveness and database reachability
func HandleCheckHealth(c *fiber.Ctx, store *database.GORMStore) error {
	dbStatus := "ok"
	if err := store.HealthCheck(); err != nil {
		dbStatus = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
