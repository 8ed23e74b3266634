// pkg/cron/catalog_refresh.go
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads the catalog. catalog.Store implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// InitCatalogRefreshCron schedules store refreshes on schedule (standard cron
// syntax or descriptors such as "@every 5m"). Each run gets at most timeout.
// Stop the returned scheduler on shutdown.
func InitCatalogRefreshCron(store Refresher, schedule string, timeout time.Duration, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() {
		refreshCatalog(store, timeout, logger)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

func refreshCatalog(store Refresher, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := store.Refresh(ctx); err != nil {
		// the store keeps serving the previous snapshot
		logger.Warn("scheduled catalog refresh failed", "error", err)
	}
}
