package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthCheck is the liveness endpoint.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
