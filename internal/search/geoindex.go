package search

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"rentsearch_backend/pkg/geo"
)

const (
	DefaultGeohashPrecision = 5
	DefaultMaxCells         = 1024

	// coverPadDeg widens the cell cover past the exact bounding box.
	coverPadDeg = 1e-6
)

// GeoIndex buckets properties by fixed-precision geohash and answers radius
// queries by visiting only the cells that intersect the query's bounding
// box, then filtering exactly with haversine.
type GeoIndex struct {
	precision uint
	maxCells  int
	rows      int
	cols      int
	cellH     float64
	cellW     float64
	buckets   map[string][]*Property
	all       []*Property
}

func NewGeoIndex(props []*Property, precision uint, maxCells int) *GeoIndex {
	if precision < 1 || precision > 12 {
		precision = DefaultGeohashPrecision
	}
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}

	totalBits := 5 * precision
	lngBits := (totalBits + 1) / 2
	latBits := totalBits / 2

	idx := &GeoIndex{
		precision: precision,
		maxCells:  maxCells,
		rows:      1 << latBits,
		cols:      1 << lngBits,
		buckets:   make(map[string][]*Property),
		all:       props,
	}
	idx.cellH = 180 / float64(idx.rows)
	idx.cellW = 360 / float64(idx.cols)

	for _, p := range props {
		key := idx.cellKey(idx.row(p.Location.Lat), idx.col(p.Location.Lng))
		idx.buckets[key] = append(idx.buckets[key], p)
	}
	return idx
}

func (idx *GeoIndex) Precision() uint { return idx.precision }
func (idx *GeoIndex) Len() int        { return len(idx.all) }

// Within returns the properties inside area. A nil area returns every
// indexed property.
func (idx *GeoIndex) Within(area *Circle) []*Property {
	if area == nil {
		return idx.all
	}

	cells, ok := idx.Cover(geo.BoundingBox(area.Center, area.RadiusKm))
	if !ok {
		return LinearScan(idx.all, *area)
	}

	var out []*Property
	for _, cell := range cells {
		for _, p := range idx.buckets[cell] {
			if geo.HaversineKm(area.Center, p.Location) <= area.RadiusKm {
				out = append(out, p)
			}
		}
	}
	return out
}

// Cover lists the geohash cells intersecting b. It reports false when more
// than maxCells would be needed; callers fall back to a linear scan then.
func (idx *GeoIndex) Cover(b geo.Bounds) ([]string, bool) {
	rowStart := idx.row(b.MinLat - coverPadDeg)
	rowEnd := idx.row(b.MaxLat + coverPadDeg)

	var colRanges [][2]int
	switch {
	case b.FullLongitude():
		colRanges = [][2]int{{0, idx.cols - 1}}
	case b.CrossesAntimeridian():
		colRanges = [][2]int{
			{idx.col(b.MinLng - coverPadDeg), idx.cols - 1},
			{0, idx.col(b.MaxLng + coverPadDeg)},
		}
	default:
		start, end := idx.col(b.MinLng-coverPadDeg), idx.col(b.MaxLng+coverPadDeg)
		if b.MinLng-coverPadDeg < -180 {
			colRanges = append(colRanges, [2]int{idx.cols - 1, idx.cols - 1})
		}
		if b.MaxLng+coverPadDeg >= 180 {
			colRanges = append(colRanges, [2]int{0, 0})
		}
		colRanges = append(colRanges, [2]int{start, end})
	}

	rows := rowEnd - rowStart + 1
	cols := 0
	for _, r := range colRanges {
		cols += r[1] - r[0] + 1
	}
	if rows*cols > idx.maxCells {
		return nil, false
	}

	seen := make(map[string]struct{}, rows*cols)
	cells := make([]string, 0, rows*cols)
	for row := rowStart; row <= rowEnd; row++ {
		for _, r := range colRanges {
			for col := r[0]; col <= r[1]; col++ {
				cell := idx.cellKey(row, col)
				if _, dup := seen[cell]; dup {
					continue
				}
				seen[cell] = struct{}{}
				cells = append(cells, cell)
			}
		}
	}
	return cells, true
}

// cellKey encodes the center of grid cell (row, col). Both indexing and
// covering go through row/col, so boundary points land in the same cell on
// both sides.
func (idx *GeoIndex) cellKey(row, col int) string {
	lat := -90 + (float64(row)+0.5)*idx.cellH
	lng := -180 + (float64(col)+0.5)*idx.cellW
	return geohash.EncodeWithPrecision(lat, lng, idx.precision)
}

func (idx *GeoIndex) row(lat float64) int {
	return clamp(int(math.Floor((lat+90)/idx.cellH)), 0, idx.rows-1)
}

func (idx *GeoIndex) col(lng float64) int {
	return clamp(int(math.Floor((lng+180)/idx.cellW)), 0, idx.cols-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LinearScan is the reference implementation of GeoIndex.Within.
func LinearScan(props []*Property, area Circle) []*Property {
	var out []*Property
	for _, p := range props {
		if geo.HaversineKm(area.Center, p.Location) <= area.RadiusKm {
			out = append(out, p)
		}
	}
	return out
}
