package places

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"rentsearch_backend/pkg/geo"
)

const (
	DefaultTimeout      = 3 * time.Second
	DefaultRadiusMeters = 1500
)

// DegradedLookupError wraps a provider failure. It is logged, never returned
// to callers of Nearby.
type DegradedLookupError struct {
	Category PlaceType
	Err      error
}

func (e DegradedLookupError) Error() string {
	return fmt.Sprintf("nearby %s lookup degraded: %v", e.Category, e.Err)
}

func (e DegradedLookupError) Unwrap() error { return e.Err }

type Options struct {
	RadiusMeters int
	Timeout      time.Duration
}

// Aggregator fans out one provider call per category and merges the results.
type Aggregator struct {
	provider Provider
	opts     Options
	logger   *slog.Logger
}

func NewAggregator(provider Provider, opts Options, logger *slog.Logger) *Aggregator {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = DefaultRadiusMeters
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{provider: provider, opts: opts, logger: logger}
}

// Nearby returns the places around center ordered by type, name and id.
// If any category lookup fails or the timeout expires the result is empty.
func (a *Aggregator) Nearby(ctx context.Context, center geo.Point) []Place {
	places, err := a.lookup(ctx, center)
	if err != nil {
		a.logger.Warn("nearby places unavailable",
			"lat", center.Lat,
			"lng", center.Lng,
			"error", err,
		)
		return []Place{}
	}
	return places
}

func (a *Aggregator) lookup(ctx context.Context, center geo.Point) ([]Place, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		out  = []Place{}
	)

	for _, category := range Categories {
		g.Go(func() error {
			raw, err := a.provider.SearchNearby(gctx, center, a.opts.RadiusMeters, string(category))
			if err == nil {
				err = gctx.Err()
			}
			if err != nil {
				return DegradedLookupError{Category: category, Err: err}
			}

			mu.Lock()
			defer mu.Unlock()
			for _, r := range raw {
				if r.ID == "" || seen[r.ID] {
					continue
				}
				seen[r.ID] = true
				out = append(out, Place{
					ID:   r.ID,
					Name: r.Name,
					Type: Classify(r.Tags),
					Lat:  r.Point.Lat,
					Lng:  r.Point.Lng,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortPlaces(out)
	return out, nil
}
