// internal/controller/location_controller.go
package controller

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CityListing struct {
	City       string   `json:"city"`
	Areas      []string `json:"areas"`
	Properties int      `json:"properties"`
}

// GetCatalogCities lists the cities and areas present in the current catalog,
// for populating location pickers.
func GetCatalogCities(c *fiber.Ctx) error {
	snap, err := catalogReader.Snapshot(c.UserContext())
	if err != nil {
		return searchError(c, err)
	}

	byCity := make(map[string]*CityListing)
	for _, p := range snap.All() {
		key := strings.ToLower(strings.TrimSpace(p.City))
		if key == "" {
			continue
		}
		listing, ok := byCity[key]
		if !ok {
			listing = &CityListing{City: strings.TrimSpace(p.City)}
			byCity[key] = listing
		}
		listing.Properties++
		if area := strings.TrimSpace(p.Area); area != "" && !slices.Contains(listing.Areas, area) {
			listing.Areas = append(listing.Areas, area)
		}
	}

	cities := make([]CityListing, 0, len(byCity))
	for _, listing := range byCity {
		slices.Sort(listing.Areas)
		if listing.Areas == nil {
			listing.Areas = []string{}
		}
		cities = append(cities, *listing)
	}
	slices.SortFunc(cities, func(a, b CityListing) int {
		return cmp.Compare(strings.ToLower(a.City), strings.ToLower(b.City))
	})

	return c.JSON(fiber.Map{
		"cities": cities,
	})
}
