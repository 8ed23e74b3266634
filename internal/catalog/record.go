package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"rentsearch_backend/internal/model"
	"rentsearch_backend/internal/search"
	"rentsearch_backend/pkg/geo"
)

// Record is one listing as exported to the JSON catalog files and as read
// from the properties table. Enum values are accepted in any casing.
type Record struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	City       string    `json:"city"`
	Area       string    `json:"area"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Price      float64   `json:"price"`
	Bedrooms   int       `json:"bedrooms"`
	Type       string    `json:"property_type"`
	Furnishing string    `json:"furnishing"`
	Amenities  []string  `json:"amenities"`
	Available  *bool     `json:"is_available"` // absent means available
	Verified   bool      `json:"is_verified"`
	ViewCount  int64     `json:"view_count"`
	Rating     *float64  `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`

	decodeErr error
}

func recordFromModel(m model.Property) Record {
	available := m.IsAvailable
	r := Record{
		ID:         m.ID,
		Title:      m.Title,
		City:       m.City,
		Area:       m.Area,
		Lat:        m.Latitude,
		Lng:        m.Longitude,
		Price:      m.Price,
		Bedrooms:   m.Bedrooms,
		Type:       m.Type,
		Furnishing: m.Furnishing,
		Available:  &available,
		Verified:   m.IsVerified,
		ViewCount:  m.ViewCount,
		Rating:     m.Rating,
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Amenities) > 0 {
		if err := json.Unmarshal(m.Amenities, &r.Amenities); err != nil {
			r.decodeErr = fmt.Errorf("property %d: amenities column: %w", m.ID, err)
		}
	}
	return r
}

// Property converts r into a validated search record.
func (r Record) Property() (search.Property, error) {
	if r.decodeErr != nil {
		return search.Property{}, r.decodeErr
	}

	t, ok := search.ParsePropertyType(r.Type)
	if !ok {
		return search.Property{}, fmt.Errorf("property %d: unknown property type %q", r.ID, r.Type)
	}
	f, ok := search.ParseFurnishing(r.Furnishing)
	if !ok {
		return search.Property{}, fmt.Errorf("property %d: unknown furnishing %q", r.ID, r.Furnishing)
	}
	amenities, err := search.NewAmenitySet(r.Amenities...)
	if err != nil {
		return search.Property{}, fmt.Errorf("property %d: %w", r.ID, err)
	}

	p := search.Property{
		ID:         r.ID,
		Title:      r.Title,
		City:       r.City,
		Area:       r.Area,
		Location:   geo.Point{Lat: r.Lat, Lng: r.Lng},
		Price:      r.Price,
		Bedrooms:   r.Bedrooms,
		Type:       t,
		Furnishing: f,
		Amenities:  amenities,
		Available:  r.Available == nil || *r.Available,
		Verified:   r.Verified,
		ViewCount:  r.ViewCount,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
	}
	if err := p.Validate(); err != nil {
		return search.Property{}, err
	}
	return p, nil
}
