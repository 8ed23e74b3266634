package controller

import (
	"github.com/gofiber/fiber/v2"
)

func GetCatalogStatus(c *fiber.Ctx) error {
	return c.JSON(catalogReader.Status())
}

// HealthCheck reports 503 until a catalog snapshot has been published.
func HealthCheck(c *fiber.Ctx) error {
	if _, err := catalogReader.Snapshot(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unavailable",
			"catalog": "not loaded",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"catalog": "ready",
	})
}
