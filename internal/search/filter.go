package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"rentsearch_backend/pkg/geo"
)

// Request parameter names understood by FilterBuilder.
const (
	ParamCity         = "city"
	ParamArea         = "area"
	ParamPropertyType = "property_type"
	ParamMinPrice     = "min_price"
	ParamMaxPrice     = "max_price"
	ParamBedrooms     = "bedrooms"
	ParamFurnishing   = "furnishing"
	ParamAmenities    = "amenities"
	ParamSortBy       = "sort_by"
	ParamLat          = "lat"
	ParamLng          = "lng"
	ParamRadius       = "radius"
	ParamLimit        = "limit"
	ParamOffset       = "offset"
	ParamAvailable    = "available"
	ParamVerified     = "verified"
)

// SearchParams lists every parameter FilterBuilder reads.
var SearchParams = []string{
	ParamCity, ParamArea, ParamPropertyType, ParamMinPrice, ParamMaxPrice, ParamBedrooms,
	ParamFurnishing, ParamAmenities, ParamSortBy, ParamLat, ParamLng, ParamRadius,
	ParamLimit, ParamOffset, ParamAvailable, ParamVerified,
}

type FilterOptions struct {
	DefaultLimit    int
	MaxLimit        int
	DefaultRadiusKm float64
}

func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		DefaultLimit:    20,
		MaxLimit:        100,
		DefaultRadiusKm: 5,
	}
}

// FilterBuilder turns raw request parameters into a Query.
type FilterBuilder struct {
	opts FilterOptions
}

func NewFilterBuilder(opts FilterOptions) *FilterBuilder {
	defaults := DefaultFilterOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaults.MaxLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	if !(opts.DefaultRadiusKm > 0) {
		opts.DefaultRadiusKm = defaults.DefaultRadiusKm
	}
	return &FilterBuilder{opts: opts}
}

func (b *FilterBuilder) Options() FilterOptions {
	return b.opts
}

// Build validates raw and returns the canonical query. Absent and blank
// values mean "no constraint".
func (b *FilterBuilder) Build(raw map[string]string) (Query, error) {
	q := Query{
		sortBy:        SortNewest,
		availableOnly: true,
		limit:         b.opts.DefaultLimit,
	}

	place := value(raw, ParamCity)
	if place == "" {
		place = value(raw, ParamArea)
	}
	if place != "" {
		key := slug.Make(place)
		if key == "" {
			return Query{}, ValidationError{Field: ParamCity, Code: ReasonUnknownValue, Msg: "must contain letters or digits"}
		}
		q.place = place
		q.placeKey = key
	}

	if s := value(raw, ParamPropertyType); s != "" {
		t, ok := ParsePropertyType(s)
		if !ok {
			return Query{}, unknownValue(ParamPropertyType, s)
		}
		q.propertyType = &t
	}

	minPrice, err := parseNonNegativeFloat(raw, ParamMinPrice)
	if err != nil {
		return Query{}, err
	}
	maxPrice, err := parseNonNegativeFloat(raw, ParamMaxPrice)
	if err != nil {
		return Query{}, err
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Query{}, ValidationError{
			Field: ParamMinPrice,
			Code:  ReasonInvertedRange,
			Msg:   fmt.Sprintf("min_price %g is greater than max_price %g", *minPrice, *maxPrice),
		}
	}
	q.minPrice, q.maxPrice = minPrice, maxPrice

	bedrooms, err := parseNonNegativeInt(raw, ParamBedrooms)
	if err != nil {
		return Query{}, err
	}
	q.minBedrooms = bedrooms

	if s := value(raw, ParamFurnishing); s != "" {
		f, ok := ParseFurnishing(s)
		if !ok {
			return Query{}, unknownValue(ParamFurnishing, s)
		}
		q.furnishing = &f
	}

	if s := value(raw, ParamAmenities); s != "" {
		set, err := parseAmenityList(s)
		if err != nil {
			return Query{}, err
		}
		q.amenities = set
	}

	if s := value(raw, ParamSortBy); s != "" {
		k, ok := ParseSortKey(s)
		if !ok {
			return Query{}, unknownValue(ParamSortBy, s)
		}
		q.sortBy = k
	}

	area, err := b.parseArea(raw)
	if err != nil {
		return Query{}, err
	}
	q.area = area

	if s := value(raw, ParamAvailable); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Query{}, unknownValue(ParamAvailable, s)
		}
		q.availableOnly = v
	}
	if s := value(raw, ParamVerified); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Query{}, unknownValue(ParamVerified, s)
		}
		q.verifiedOnly = v
	}

	limit, err := parseNonNegativeInt(raw, ParamLimit)
	if err != nil {
		return Query{}, err
	}
	if limit != nil {
		q.limit = min(*limit, b.opts.MaxLimit)
	}
	offset, err := parseNonNegativeInt(raw, ParamOffset)
	if err != nil {
		return Query{}, err
	}
	if offset != nil {
		q.offset = *offset
	}

	return q, nil
}

func (b *FilterBuilder) parseArea(raw map[string]string) (*Circle, error) {
	latRaw, lngRaw, radiusRaw := value(raw, ParamLat), value(raw, ParamLng), value(raw, ParamRadius)

	if latRaw == "" && lngRaw == "" {
		if radiusRaw != "" {
			return nil, ValidationError{Field: ParamRadius, Code: ReasonRadiusWithoutCenter, Msg: "radius requires lat and lng"}
		}
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, ValidationError{Field: ParamLat, Code: ReasonIncompleteCenter, Msg: "lat and lng must be supplied together"}
	}

	center, err := parsePoint(latRaw, lngRaw)
	if err != nil {
		return nil, err
	}

	radius := b.opts.DefaultRadiusKm
	if radiusRaw != "" {
		radius, err = parseFloat(ParamRadius, radiusRaw)
		if err != nil {
			return nil, err
		}
		if radius <= 0 {
			return nil, ValidationError{Field: ParamRadius, Code: ReasonInvalidRadius, Msg: "must be greater than 0"}
		}
	}

	return &Circle{Center: center, RadiusKm: radius}, nil
}

// ParseCenter reads a mandatory lat/lng pair, as used by the nearby places
// endpoint.
func ParseCenter(raw map[string]string) (geo.Point, error) {
	latRaw, lngRaw := value(raw, ParamLat), value(raw, ParamLng)
	if latRaw == "" || lngRaw == "" {
		return geo.Point{}, ValidationError{Field: ParamLat, Code: ReasonIncompleteCenter, Msg: "lat and lng are required"}
	}
	return parsePoint(latRaw, lngRaw)
}

func parsePoint(latRaw, lngRaw string) (geo.Point, error) {
	lat, err := parseFloat(ParamLat, latRaw)
	if err != nil {
		return geo.Point{}, err
	}
	if !geo.ValidLat(lat) {
		return geo.Point{}, ValidationError{Field: ParamLat, Code: ReasonOutOfRange, Msg: "must be between -90 and 90"}
	}
	lng, err := parseFloat(ParamLng, lngRaw)
	if err != nil {
		return geo.Point{}, err
	}
	if !geo.ValidLng(lng) {
		return geo.Point{}, ValidationError{Field: ParamLng, Code: ReasonOutOfRange, Msg: "must be between -180 and 180"}
	}
	return geo.Point{Lat: lat, Lng: lng}, nil
}

func parseAmenityList(s string) (AmenitySet, error) {
	var set AmenitySet
	for _, token := range strings.Split(s, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		a, ok := ParseAmenity(token)
		if !ok {
			return 0, ValidationError{
				Field: ParamAmenities,
				Code:  ReasonUnknownAmenity,
				Msg:   fmt.Sprintf("unknown amenity %q", strings.TrimSpace(token)),
			}
		}
		set |= amenityBits[a]
	}
	return set, nil
}

func value(raw map[string]string, key string) string {
	return strings.TrimSpace(raw[key])
}

func unknownValue(field, got string) ValidationError {
	return ValidationError{Field: field, Code: ReasonUnknownValue, Msg: fmt.Sprintf("unrecognized value %q", got)}
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ValidationError{Field: field, Code: ReasonInvalidNumber, Msg: fmt.Sprintf("%q is not a number", s)}
	}
	return v, nil
}

func parseNonNegativeFloat(raw map[string]string, field string) (*float64, error) {
	s := value(raw, field)
	if s == "" {
		return nil, nil
	}
	v, err := parseFloat(field, s)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, ValidationError{Field: field, Code: ReasonNegativeValue, Msg: "must not be negative"}
	}
	return &v, nil
}

func parseNonNegativeInt(raw map[string]string, field string) (*int, error) {
	s := value(raw, field)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, ValidationError{Field: field, Code: ReasonInvalidNumber, Msg: fmt.Sprintf("%q is not an integer", s)}
	}
	if v < 0 {
		return nil, ValidationError{Field: field, Code: ReasonNegativeValue, Msg: "must not be negative"}
	}
	return &v, nil
}
