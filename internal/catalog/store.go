package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"rentsearch_backend/internal/search"
)

var errNotLoaded = errors.New("catalog has not been loaded yet")

type StoreOptions struct {
	GeohashPrecision uint
	MaxCells         int
}

// Status describes the published snapshot and the most recent refresh.
type Status struct {
	Source      string    `json:"source"`
	Version     string    `json:"version,omitempty"`
	Records     int       `json:"records"`
	Skipped     int       `json:"skipped"`
	LoadedAt    time.Time `json:"loaded_at"`
	LastAttempt time.Time `json:"last_attempt"`
	LastError   string    `json:"last_error,omitempty"`
}

// Store holds the current catalog snapshot. Readers only touch the atomic
// pointer; Refresh builds a complete new snapshot before swapping it in.
type Store struct {
	loader Loader
	opts   StoreOptions
	logger *slog.Logger

	current atomic.Pointer[search.Snapshot]

	refreshMu sync.Mutex

	statusMu sync.Mutex
	status   Status
	lastErr  error
}

func NewStore(loader Loader, opts StoreOptions, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loader: loader,
		opts:   opts,
		logger: logger,
		status: Status{Source: loader.Source()},
	}
}

// Snapshot returns the published snapshot. Before the first successful
// refresh it fails with a search.CatalogUnavailableError.
func (s *Store) Snapshot(ctx context.Context) (*search.Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	s.statusMu.Lock()
	cause := s.lastErr
	s.statusMu.Unlock()
	if cause == nil {
		cause = errNotLoaded
	}
	return nil, search.CatalogUnavailableError{Err: cause}
}

// Refresh loads the catalog and publishes it. On failure the previous
// snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := time.Now()
	records, err := s.loader.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load catalog from %s: %w", s.loader.Source(), err)
		s.recordFailure(started, err)
		s.logger.Warn("catalog refresh failed", "source", s.loader.Source(), "error", err)
		return err
	}

	props := make([]search.Property, 0, len(records))
	skipped := 0
	for _, r := range records {
		p, err := r.Property()
		if err != nil {
			skipped++
			s.logger.Warn("skipping invalid catalog record", "id", r.ID, "error", err)
			continue
		}
		props = append(props, p)
	}

	snap := search.NewSnapshot(props, search.SnapshotOptions{
		Version:          uuid.NewString(),
		LoadedAt:         time.Now(),
		GeohashPrecision: s.opts.GeohashPrecision,
		MaxCells:         s.opts.MaxCells,
	})
	s.current.Store(snap)

	s.statusMu.Lock()
	s.lastErr = nil
	s.status = Status{
		Source:      s.loader.Source(),
		Version:     snap.Version(),
		Records:     snap.Len(),
		Skipped:     skipped,
		LoadedAt:    snap.LoadedAt(),
		LastAttempt: started,
	}
	s.statusMu.Unlock()

	s.logger.Info("catalog refreshed",
		"source", s.loader.Source(),
		"version", snap.Version(),
		"records", snap.Len(),
		"skipped", skipped,
		"took", time.Since(started),
	)
	return nil
}

func (s *Store) recordFailure(at time.Time, err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.lastErr = err
	s.status.LastAttempt = at
	s.status.LastError = err.Error()
}

func (s *Store) Status() Status {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}
