package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rentsearch_backend/internal/catalog"
	"rentsearch_backend/internal/middleware"
	"rentsearch_backend/internal/places"
	"rentsearch_backend/internal/search"
	"rentsearch_backend/pkg/geo"
)

// CatalogReader is the part of catalog.Store the handlers use.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*search.Snapshot, error)
	Status() catalog.Status
}

// NearbyFinder looks up points of interest and never fails.
type NearbyFinder interface {
	Nearby(ctx context.Context, center geo.Point) []places.Place
}

type SearchDeps struct {
	Builder *search.FilterBuilder
	Catalog CatalogReader
	Places  NearbyFinder
	Logger  *slog.Logger
}

var (
	filterBuilder *search.FilterBuilder
	searchEngine  *search.Engine
	catalogReader CatalogReader
	nearbyFinder  NearbyFinder
)

func InitSearchController(deps SearchDeps) {
	filterBuilder = deps.Builder
	catalogReader = deps.Catalog
	nearbyFinder = deps.Places
	searchEngine = search.NewEngine(deps.Catalog, deps.Logger)
}

// SearchProperties runs a filtered, ranked and paginated property search.
// When a center is given the nearby places lookup runs alongside the search.
func SearchProperties(c *fiber.Ctx) error {
	q, err := filterBuilder.Build(c.Queries())
	if err != nil {
		return searchError(c, err)
	}

	ctx := c.UserContext()
	area, hasCenter := q.Area()

	var nearby []places.Place
	done := make(chan struct{})
	if hasCenter {
		go func() {
			defer close(done)
			nearby = nearbyFinder.Nearby(ctx, area.Center)
		}()
	} else {
		close(done)
	}

	page, err := searchEngine.Search(ctx, q)
	<-done
	if err != nil {
		return searchError(c, err)
	}

	resp := fiber.Map{
		"properties": page.Properties,
		"total":      page.Total,
		"limit":      page.Limit,
		"offset":     page.Offset,
	}
	if hasCenter {
		resp["nearby_places"] = nearby
	}
	return c.JSON(resp)
}

// GetSearchOptions describes the accepted filter values.
func GetSearchOptions(c *fiber.Ctx) error {
	opts := filterBuilder.Options()
	return c.JSON(fiber.Map{
		"amenities":         search.Amenities,
		"property_types":    search.PropertyTypes,
		"furnishing":        search.Furnishings,
		"sort_by":           search.SortKeys,
		"default_sort":      search.SortNewest,
		"default_limit":     opts.DefaultLimit,
		"max_limit":         opts.MaxLimit,
		"default_radius_km": opts.DefaultRadiusKm,
	})
}

func searchError(c *fiber.Ctx, err error) error {
	var ve search.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Error(),
			"code":  ve.Code,
			"field": ve.Field,
		})
	}
	if search.IsCatalogUnavailable(err) {
		middleware.Logger(c).Warn("search rejected, catalog unavailable", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Property catalog is not available, try again later",
		})
	}
	return err
}
