package search

import (
	"errors"
	"testing"
)

func buildQuery(t *testing.T, raw map[string]string) Query {
	t.Helper()
	q, err := NewFilterBuilder(DefaultFilterOptions()).Build(raw)
	if err != nil {
		t.Fatalf("Build(%v) error: %v", raw, err)
	}
	return q
}

func TestBuildDefaults(t *testing.T) {
	q := buildQuery(t, map[string]string{})

	if q.SortBy() != SortNewest {
		t.Errorf("sort = %q, want newest", q.SortBy())
	}
	if q.Limit() != 20 || q.Offset() != 0 {
		t.Errorf("limit/offset = %d/%d, want 20/0", q.Limit(), q.Offset())
	}
	if !q.AvailableOnly() || q.VerifiedOnly() {
		t.Errorf("available/verified = %v/%v, want true/false", q.AvailableOnly(), q.VerifiedOnly())
	}
	if _, ok := q.Area(); ok {
		t.Error("area set without a center")
	}
	if !q.Amenities().IsEmpty() {
		t.Error("amenities set without input")
	}
}

func TestBuildBlankMeansUnconstrained(t *testing.T) {
	q := buildQuery(t, map[string]string{
		"min_price":     "  ",
		"max_price":     "",
		"bedrooms":      "",
		"property_type": " ",
		"furnishing":    "",
		"amenities":     "",
		"city":          "",
	})

	if _, ok := q.MinPrice(); ok {
		t.Error("blank min_price became a constraint")
	}
	if _, ok := q.MaxPrice(); ok {
		t.Error("blank max_price became a constraint")
	}
	if _, ok := q.MinBedrooms(); ok {
		t.Error("blank bedrooms became a constraint")
	}
	if _, ok := q.PropertyType(); ok {
		t.Error("blank property_type became a constraint")
	}
	if _, ok := q.Furnishing(); ok {
		t.Error("blank furnishing became a constraint")
	}
	if q.Place() != "" {
		t.Error("blank city became a constraint")
	}
}

func TestBuildZeroIsAConstraint(t *testing.T) {
	q := buildQuery(t, map[string]string{"min_price": "0", "bedrooms": "0"})

	if v, ok := q.MinPrice(); !ok || v != 0 {
		t.Errorf("min_price = %v, %v; want 0, true", v, ok)
	}
	if v, ok := q.MinBedrooms(); !ok || v != 0 {
		t.Errorf("bedrooms = %v, %v; want 0, true", v, ok)
	}
}

func TestBuildParsesEverything(t *testing.T) {
	q := buildQuery(t, map[string]string{
		"city":          "Kathmandu",
		"property_type": "Apartment",
		"min_price":     "100",
		"max_price":     "2500.5",
		"bedrooms":      "2",
		"furnishing":    "semi-furnished",
		"amenities":     "wifi, Parking,,",
		"sort_by":       "price_high",
		"lat":           "27.7172",
		"lng":           "85.3240",
		"radius":        "2.5",
		"limit":         "10",
		"offset":        "30",
		"available":     "false",
		"verified":      "true",
	})

	if q.Place() != "Kathmandu" {
		t.Errorf("place = %q", q.Place())
	}
	if v, _ := q.PropertyType(); v != PropertyTypeApartment {
		t.Errorf("property_type = %q", v)
	}
	if v, _ := q.MaxPrice(); v != 2500.5 {
		t.Errorf("max_price = %v", v)
	}
	if v, _ := q.Furnishing(); v != FurnishingSemiFurnished {
		t.Errorf("furnishing = %q", v)
	}
	if !q.Amenities().Has(AmenityWifi) || !q.Amenities().Has(AmenityParking) || q.Amenities().Len() != 2 {
		t.Errorf("amenities = %v", q.Amenities().List())
	}
	if q.SortBy() != SortPriceHigh {
		t.Errorf("sort = %q", q.SortBy())
	}
	area, ok := q.Area()
	if !ok || area.Center.Lat != 27.7172 || area.Center.Lng != 85.3240 || area.RadiusKm != 2.5 {
		t.Errorf("area = %+v, %v", area, ok)
	}
	if q.Limit() != 10 || q.Offset() != 30 {
		t.Errorf("limit/offset = %d/%d", q.Limit(), q.Offset())
	}
	if q.AvailableOnly() || !q.VerifiedOnly() {
		t.Errorf("available/verified = %v/%v", q.AvailableOnly(), q.VerifiedOnly())
	}
}

func TestBuildDefaultRadiusWithCenter(t *testing.T) {
	q := buildQuery(t, map[string]string{"lat": "28", "lng": "84"})

	area, ok := q.Area()
	if !ok || area.RadiusKm != 5 {
		t.Fatalf("area = %+v, %v; want default 5 km radius", area, ok)
	}
}

func TestBuildClampsLimit(t *testing.T) {
	q := buildQuery(t, map[string]string{"limit": "5000"})
	if q.Limit() != 100 {
		t.Fatalf("limit = %d, want clamp to 100", q.Limit())
	}
}

func TestBuildValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]string
		field string
		code  string
	}{
		{"inverted price range", map[string]string{"min_price": "300", "max_price": "100"}, "min_price", ReasonInvertedRange},
		{"negative price", map[string]string{"min_price": "-1"}, "min_price", ReasonNegativeValue},
		{"price not a number", map[string]string{"max_price": "cheap"}, "max_price", ReasonInvalidNumber},
		{"price NaN", map[string]string{"max_price": "NaN"}, "max_price", ReasonInvalidNumber},
		{"bedrooms fractional", map[string]string{"bedrooms": "2.5"}, "bedrooms", ReasonInvalidNumber},
		{"bedrooms negative", map[string]string{"bedrooms": "-2"}, "bedrooms", ReasonNegativeValue},
		{"unknown property type", map[string]string{"property_type": "castle"}, "property_type", ReasonUnknownValue},
		{"unknown furnishing", map[string]string{"furnishing": "partly"}, "furnishing", ReasonUnknownValue},
		{"unknown sort key", map[string]string{"sort_by": "cheapest"}, "sort_by", ReasonUnknownValue},
		{"unknown amenity", map[string]string{"amenities": "wifi,helipad"}, "amenities", ReasonUnknownAmenity},
		{"radius without center", map[string]string{"radius": "3"}, "radius", ReasonRadiusWithoutCenter},
		{"lat without lng", map[string]string{"lat": "28"}, "lat", ReasonIncompleteCenter},
		{"lat out of range", map[string]string{"lat": "91", "lng": "84"}, "lat", ReasonOutOfRange},
		{"lng out of range", map[string]string{"lat": "28", "lng": "-181"}, "lng", ReasonOutOfRange},
		{"zero radius", map[string]string{"lat": "28", "lng": "84", "radius": "0"}, "radius", ReasonInvalidRadius},
		{"radius not a number", map[string]string{"lat": "28", "lng": "84", "radius": "far"}, "radius", ReasonInvalidNumber},
		{"negative limit", map[string]string{"limit": "-1"}, "limit", ReasonNegativeValue},
		{"bad offset", map[string]string{"offset": "x"}, "offset", ReasonInvalidNumber},
		{"bad available flag", map[string]string{"available": "maybe"}, "available", ReasonUnknownValue},
		{"punctuation city", map[string]string{"city": "!!!"}, "city", ReasonUnknownValue},
	}

	builder := NewFilterBuilder(DefaultFilterOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.Build(tt.raw)
			if err == nil {
				t.Fatalf("Build(%v) succeeded, want %s", tt.raw, tt.code)
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			if verr.Field != tt.field || verr.Code != tt.code {
				t.Errorf("got %s/%s, want %s/%s", verr.Field, verr.Code, tt.field, tt.code)
			}
		})
	}
}

func TestNewFilterBuilderFixesOptions(t *testing.T) {
	b := NewFilterBuilder(FilterOptions{DefaultLimit: 50, MaxLimit: 10})
	opts := b.Options()
	if opts.DefaultLimit != 10 || opts.MaxLimit != 10 || opts.DefaultRadiusKm != 5 {
		t.Fatalf("options = %+v", opts)
	}
}

func TestParseCenter(t *testing.T) {
	p, err := ParseCenter(map[string]string{"lat": " 27.7 ", "lng": "85.3"})
	if err != nil || p.Lat != 27.7 || p.Lng != 85.3 {
		t.Fatalf("ParseCenter = %v, %v", p, err)
	}

	for _, raw := range []map[string]string{
		{},
		{"lat": "27.7"},
		{"lat": "north", "lng": "85.3"},
		{"lat": "27.7", "lng": "200"},
	} {
		if _, err := ParseCenter(raw); !IsValidation(err) {
			t.Errorf("ParseCenter(%v) err = %v, want ValidationError", raw, err)
		}
	}
}
