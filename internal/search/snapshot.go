package search

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Snapshot is an immutable, point-in-time view of the catalog together with
// its spatial index. Requests hold on to the snapshot they started with.
type Snapshot struct {
	version  string
	loadedAt time.Time
	records  []Property
	ptrs     []*Property
	index    *GeoIndex
}

type SnapshotOptions struct {
	Version          string
	LoadedAt         time.Time
	GeohashPrecision uint
	MaxCells         int
}

// NewSnapshot copies records, so later changes to the caller's slice do not
// leak into the snapshot.
func NewSnapshot(records []Property, opts SnapshotOptions) *Snapshot {
	s := &Snapshot{
		version:  opts.Version,
		loadedAt: opts.LoadedAt,
		records:  make([]Property, len(records)),
		ptrs:     make([]*Property, len(records)),
	}
	copy(s.records, records)
	for i := range s.records {
		r := &s.records[i]
		r.placeKey = placeKey(r.City, r.Area)
		s.ptrs[i] = r
	}
	s.index = NewGeoIndex(s.ptrs, opts.GeohashPrecision, opts.MaxCells)
	return s
}

func placeKey(city, area string) string {
	return strings.Join([]string{slug.Make(city), slug.Make(area)}, "|")
}

func (s *Snapshot) Version() string     { return s.version }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
func (s *Snapshot) Len() int            { return len(s.ptrs) }
func (s *Snapshot) Index() *GeoIndex    { return s.index }
func (s *Snapshot) All() []*Property    { return s.ptrs }
