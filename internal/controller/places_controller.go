package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentsearch_backend/internal/search"
)

// GetNearbyPlaces lists schools, hospitals and transit stations around a
// coordinate. Upstream failures give an empty list, not an error.
func GetNearbyPlaces(c *fiber.Ctx) error {
	center, err := search.ParseCenter(c.Queries())
	if err != nil {
		return searchError(c, err)
	}

	return c.JSON(fiber.Map{
		"places": nearbyFinder.Nearby(c.UserContext(), center),
	})
}
