package search

import "rentsearch_backend/pkg/geo"

// SortKey selects the ranking order of a result page.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceLow   SortKey = "price_low"
	SortPriceHigh  SortKey = "price_high"
	SortMostViewed SortKey = "most_viewed"
	SortRating     SortKey = "rating"
)

var SortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortMostViewed, SortRating}

func ParseSortKey(s string) (SortKey, bool) {
	token := normalizeToken(s)
	for _, k := range SortKeys {
		if string(k) == token {
			return k, true
		}
	}
	return "", false
}

// Circle is a geo constraint: everything within RadiusKm of Center.
type Circle struct {
	Center   geo.Point
	RadiusKm float64
}

// Query is the canonical, validated form of a search request. It is only
// produced by FilterBuilder.Build and exposes its fields through accessors,
// so a built Query cannot be changed by the stages that consume it.
type Query struct {
	place         string
	placeKey      string
	propertyType  *PropertyType
	minPrice      *float64
	maxPrice      *float64
	minBedrooms   *int
	furnishing    *Furnishing
	amenities     AmenitySet
	sortBy        SortKey
	area          *Circle
	availableOnly bool
	verifiedOnly  bool
	limit         int
	offset        int
}

// Place returns the raw city/area text, "" when unconstrained.
func (q Query) Place() string { return q.place }

func (q Query) PropertyType() (PropertyType, bool) {
	if q.propertyType == nil {
		return "", false
	}
	return *q.propertyType, true
}

func (q Query) MinPrice() (float64, bool) {
	if q.minPrice == nil {
		return 0, false
	}
	return *q.minPrice, true
}

func (q Query) MaxPrice() (float64, bool) {
	if q.maxPrice == nil {
		return 0, false
	}
	return *q.maxPrice, true
}

func (q Query) MinBedrooms() (int, bool) {
	if q.minBedrooms == nil {
		return 0, false
	}
	return *q.minBedrooms, true
}

func (q Query) Furnishing() (Furnishing, bool) {
	if q.furnishing == nil {
		return "", false
	}
	return *q.furnishing, true
}

func (q Query) Amenities() AmenitySet { return q.amenities }
func (q Query) SortBy() SortKey       { return q.sortBy }

// Area returns the geo constraint, if any.
func (q Query) Area() (Circle, bool) {
	if q.area == nil {
		return Circle{}, false
	}
	return *q.area, true
}

func (q Query) AvailableOnly() bool { return q.availableOnly }
func (q Query) VerifiedOnly() bool  { return q.verifiedOnly }
func (q Query) Limit() int          { return q.limit }
func (q Query) Offset() int         { return q.offset }
