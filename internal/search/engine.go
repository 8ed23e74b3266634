package search

import (
	"context"
	"log/slog"
	"strings"
)

// SnapshotSource hands out the current catalog snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Engine runs the filter → rank → paginate pipeline against a snapshot.
type Engine struct {
	source SnapshotSource
	logger *slog.Logger
}

func NewEngine(source SnapshotSource, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, logger: logger}
}

// Search returns one page of results for q. The only error it produces is a
// CatalogUnavailableError.
func (e *Engine) Search(ctx context.Context, q Query) (Page, error) {
	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		if IsCatalogUnavailable(err) {
			return Page{}, err
		}
		return Page{}, CatalogUnavailableError{Err: err}
	}

	page := Run(snap, q)

	e.logger.Debug("search completed",
		"snapshot", snap.Version(),
		"sort_by", q.SortBy(),
		"total", page.Total,
		"returned", len(page.Properties),
	)
	return page, nil
}

// Run evaluates q against snap without any I/O.
func Run(snap *Snapshot, q Query) Page {
	var candidates []*Property
	if area, ok := q.Area(); ok {
		candidates = snap.Index().Within(&area)
	} else {
		candidates = snap.All()
	}

	matched := make([]*Property, 0, len(candidates))
	for _, p := range candidates {
		if Matches(p, q) {
			matched = append(matched, p)
		}
	}

	return Paginate(Rank(matched, q.SortBy()), q.Limit(), q.Offset())
}

// Matches applies every non-spatial constraint of q to p.
func Matches(p *Property, q Query) bool {
	if q.AvailableOnly() && !p.Available {
		return false
	}
	if q.VerifiedOnly() && !p.Verified {
		return false
	}
	if t, ok := q.PropertyType(); ok && p.Type != t {
		return false
	}
	if f, ok := q.Furnishing(); ok && p.Furnishing != f {
		return false
	}
	if v, ok := q.MinPrice(); ok && p.Price < v {
		return false
	}
	if v, ok := q.MaxPrice(); ok && p.Price > v {
		return false
	}
	if v, ok := q.MinBedrooms(); ok && p.Bedrooms < v {
		return false
	}
	if !p.Amenities.Matches(q.Amenities()) {
		return false
	}
	if q.placeKey != "" && !strings.Contains(p.placeKey, q.placeKey) {
		return false
	}
	return true
}
