package search

import (
	"fmt"
	"math"
	"strings"
	"time"

	"rentsearch_backend/pkg/geo"
)

// Property Types
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeRoom       PropertyType = "room"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeCommercial PropertyType = "commercial"
)

var PropertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeHouse,
	PropertyTypeRoom,
	PropertyTypeStudio,
	PropertyTypeCommercial,
}

// Furnishing levels
type Furnishing string

const (
	FurnishingFurnished     Furnishing = "furnished"
	FurnishingSemiFurnished Furnishing = "semi_furnished"
	FurnishingUnfurnished   Furnishing = "unfurnished"
)

var Furnishings = []Furnishing{
	FurnishingFurnished,
	FurnishingSemiFurnished,
	FurnishingUnfurnished,
}

// ParsePropertyType accepts any casing and "-" in place of "_".
func ParsePropertyType(s string) (PropertyType, bool) {
	token := normalizeToken(s)
	for _, t := range PropertyTypes {
		if string(t) == token {
			return t, true
		}
	}
	return "", false
}

func ParseFurnishing(s string) (Furnishing, bool) {
	token := normalizeToken(s)
	for _, f := range Furnishings {
		if string(f) == token {
			return f, true
		}
	}
	return "", false
}

func normalizeToken(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// Property is a read-only catalog entry. Snapshots share *Property values
// between requests, so nothing in this package writes to one after
// NewSnapshot returns.
type Property struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	City       string       `json:"city"`
	Area       string       `json:"area"`
	Location   geo.Point    `json:"location"`
	Price      float64      `json:"price"`
	Bedrooms   int          `json:"bedrooms"`
	Type       PropertyType `json:"property_type"`
	Furnishing Furnishing   `json:"furnishing"`
	Amenities  AmenitySet   `json:"amenities"`
	Available  bool         `json:"is_available"`
	Verified   bool         `json:"is_verified"`
	ViewCount  int64        `json:"view_count"`
	Rating     *float64     `json:"rating"`
	CreatedAt  time.Time    `json:"created_at"`

	placeKey string
}

// Validate checks a catalog entry before it is admitted into a snapshot.
func (p Property) Validate() error {
	switch {
	case p.ID == 0:
		return fmt.Errorf("missing id")
	case !geo.ValidLat(p.Location.Lat) || !geo.ValidLng(p.Location.Lng):
		return fmt.Errorf("property %d: invalid location %.6f,%.6f", p.ID, p.Location.Lat, p.Location.Lng)
	case !(p.Price > 0) || math.IsInf(p.Price, 0):
		return fmt.Errorf("property %d: price must be positive", p.ID)
	case p.Bedrooms < 0:
		return fmt.Errorf("property %d: negative bedroom count", p.ID)
	case p.ViewCount < 0:
		return fmt.Errorf("property %d: negative view count", p.ID)
	}
	if t, ok := ParsePropertyType(string(p.Type)); !ok || t != p.Type {
		return fmt.Errorf("property %d: unknown property type %q", p.ID, p.Type)
	}
	if f, ok := ParseFurnishing(string(p.Furnishing)); !ok || f != p.Furnishing {
		return fmt.Errorf("property %d: unknown furnishing %q", p.ID, p.Furnishing)
	}
	if p.Rating != nil && (math.IsNaN(*p.Rating) || *p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("property %d: rating out of range", p.ID)
	}
	return nil
}
