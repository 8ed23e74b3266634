// pkg/geo/geo.go
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for all great-circle math.
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a lat/lng box. When MinLng > MaxLng the box crosses the antimeridian.
type Bounds struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

func (b Bounds) CrossesAntimeridian() bool {
	return b.MinLng > b.MaxLng
}

func (b Bounds) FullLongitude() bool {
	return b.MinLng == -180 && b.MaxLng == 180
}

// ValidLat reports whether lat is a finite latitude in degrees.
func ValidLat(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLng reports whether lng is a finite longitude in degrees.
func ValidLng(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b Point) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// BoundingBox returns the smallest lat/lng box containing every point within
// radiusKm of center. If the circle covers a pole the box spans all longitudes.
func BoundingBox(center Point, radiusKm float64) Bounds {
	angular := radiusKm / EarthRadiusKm
	lat := toRad(center.Lat)
	lng := toRad(center.Lng)

	minLat := lat - angular
	maxLat := lat + angular

	if minLat <= -math.Pi/2 || maxLat >= math.Pi/2 {
		return Bounds{
			MinLat: math.Max(toDeg(minLat), -90),
			MinLng: -180,
			MaxLat: math.Min(toDeg(maxLat), 90),
			MaxLng: 180,
		}
	}

	ratio := math.Sin(angular) / math.Cos(lat)
	if ratio >= 1 {
		return Bounds{MinLat: toDeg(minLat), MinLng: -180, MaxLat: toDeg(maxLat), MaxLng: 180}
	}
	dLng := math.Asin(ratio)

	minLng := toDeg(lng - dLng)
	maxLng := toDeg(lng + dLng)
	if maxLng-minLng >= 360 {
		return Bounds{MinLat: toDeg(minLat), MinLng: -180, MaxLat: toDeg(maxLat), MaxLng: 180}
	}

	return Bounds{
		MinLat: toDeg(minLat),
		MinLng: normalizeLng(minLng),
		MaxLat: toDeg(maxLat),
		MaxLng: normalizeLng(maxLng),
	}
}

// normalizeLng wraps lng into [-180, 180).
func normalizeLng(lng float64) float64 {
	for lng < -180 {
		lng += 360
	}
	for lng >= 180 {
		lng -= 360
	}
	return lng
}
