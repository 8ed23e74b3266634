package search

import (
	"math/rand/v2"
	"slices"
	"testing"

	"rentsearch_backend/pkg/geo"
)

// kmNorth returns the latitude reached by moving km due north of lat.
func kmNorth(lat, km float64) float64 {
	return lat + km/geo.EarthRadiusKm*180/3.141592653589793
}

func ids(props []*Property) []uint {
	out := make([]uint, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	slices.Sort(out)
	return out
}

func pointers(records []Property) []*Property {
	out := make([]*Property, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}

func TestGeoIndexRadiusBoundary(t *testing.T) {
	center := geo.Point{Lat: 28.0, Lng: 84.0}
	records := []Property{
		{ID: 1, Location: geo.Point{Lat: kmNorth(28.0, 1.2), Lng: 84.0}},
		{ID: 2, Location: geo.Point{Lat: kmNorth(28.0, 0.9), Lng: 84.0}},
	}
	idx := NewGeoIndex(pointers(records), DefaultGeohashPrecision, DefaultMaxCells)

	got := ids(idx.Within(&Circle{Center: center, RadiusKm: 1}))
	if !slices.Equal(got, []uint{2}) {
		t.Fatalf("Within = %v, want [2]", got)
	}
}

func TestGeoIndexInclusiveBoundary(t *testing.T) {
	center := geo.Point{Lat: -33.86, Lng: 151.2}
	p := Property{ID: 7, Location: geo.Point{Lat: -33.8, Lng: 151.25}}
	radius := geo.HaversineKm(center, p.Location)

	idx := NewGeoIndex([]*Property{&p}, DefaultGeohashPrecision, DefaultMaxCells)
	if got := idx.Within(&Circle{Center: center, RadiusKm: radius}); len(got) != 1 {
		t.Fatalf("property at exactly the radius was excluded")
	}
}

func TestGeoIndexNilAreaReturnsAll(t *testing.T) {
	records := []Property{{ID: 1}, {ID: 2, Location: geo.Point{Lat: 50, Lng: 10}}}
	idx := NewGeoIndex(pointers(records), DefaultGeohashPrecision, DefaultMaxCells)
	if got := idx.Within(nil); len(got) != 2 {
		t.Fatalf("Within(nil) returned %d properties, want 2", len(got))
	}
}

func TestGeoIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	centers := []geo.Point{
		{Lat: 28.0, Lng: 84.0},
		{Lat: 0, Lng: 0},
		{Lat: 51.5, Lng: -0.12},
		{Lat: -16.5, Lng: 179.98},
		{Lat: 64.1, Lng: -179.99},
		{Lat: 89.97, Lng: 12},
		{Lat: -89.9, Lng: -45},
	}
	radii := []float64{0.3, 1, 4.9, 5, 12, 60}

	for _, precision := range []uint{3, 4, 5, 6} {
		var records []Property
		id := uint(1)
		for _, c := range centers {
			for i := 0; i < 400; i++ {
				lat := c.Lat + (rng.Float64()*2-1)*0.6
				lng := c.Lng + (rng.Float64()*2-1)*0.6
				if lat > 90 {
					lat = 180 - lat
				}
				if lat < -90 {
					lat = -180 - lat
				}
				if lng >= 180 {
					lng -= 360
				}
				if lng < -180 {
					lng += 360
				}
				records = append(records, Property{ID: id, Location: geo.Point{Lat: lat, Lng: lng}})
				id++
			}
		}
		all := pointers(records)
		idx := NewGeoIndex(all, precision, 4096)

		for _, c := range centers {
			for _, r := range radii {
				area := Circle{Center: c, RadiusKm: r}
				want := ids(LinearScan(all, area))
				got := ids(idx.Within(&area))
				if !slices.Equal(got, want) {
					t.Fatalf("precision %d center %+v radius %v: index found %d, linear scan %d",
						precision, c, r, len(got), len(want))
				}
			}
		}
	}
}

func TestGeoIndexCellEdges(t *testing.T) {
	idx := NewGeoIndex(nil, DefaultGeohashPrecision, DefaultMaxCells)

	// Properties placed exactly on grid lines around the center.
	center := geo.Point{Lat: 10 * idx.cellH, Lng: 20 * idx.cellW}
	var records []Property
	id := uint(1)
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			records = append(records, Property{
				ID:       id,
				Location: geo.Point{Lat: center.Lat + float64(dr)*idx.cellH, Lng: center.Lng + float64(dc)*idx.cellW},
			})
			id++
		}
	}
	all := pointers(records)
	idx = NewGeoIndex(all, DefaultGeohashPrecision, DefaultMaxCells)

	for _, r := range []float64{1, 4.8, 4.9, 5, 9.7, 10} {
		area := Circle{Center: center, RadiusKm: r}
		if got, want := ids(idx.Within(&area)), ids(LinearScan(all, area)); !slices.Equal(got, want) {
			t.Fatalf("radius %v: index %v, linear scan %v", r, got, want)
		}
	}
}

func TestGeoIndexCoverFallsBack(t *testing.T) {
	idx := NewGeoIndex(nil, 6, 16)
	if _, ok := idx.Cover(geo.BoundingBox(geo.Point{Lat: 10, Lng: 10}, 50)); ok {
		t.Fatal("expected cover to exceed the cell cap")
	}
	if cells, ok := idx.Cover(geo.BoundingBox(geo.Point{Lat: 10, Lng: 10}, 0.1)); !ok || len(cells) == 0 {
		t.Fatalf("small cover = %v, %v", cells, ok)
	}
}
