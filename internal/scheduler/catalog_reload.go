package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/barback/internal/catalog"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

// CatalogReloader keeps the catalog snapshot populated. On start it loads the
// backing store and fetches from the remote API only when that left the
// catalog empty. A manual trigger, or the optional interval, forces a full
// refresh.
type CatalogReloader struct {
	store         *catalog.Store
	fetch         catalog.LetterFetcher
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader. An interval of zero
// disables periodic refreshes.
func NewCatalogReloader(
	store *catalog.Store,
	fetch catalog.LetterFetcher,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		store:         store,
		fetch:         fetch,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog and begins listening for refresh requests
func (cr *CatalogReloader) Start(ctx context.Context) {
	if n := cr.store.Load(ctx); n > 0 {
		cr.logger.Info("catalog restored from backing store",
			logger.Int("count", n))
	} else {
		n = cr.store.EnsureLoaded(ctx, cr.fetch)
		cr.logger.Info("initial catalog load finished",
			logger.Int("count", n))
	}

	go func() {
		var tick <-chan time.Time
		if cr.interval > 0 {
			ticker := time.NewTicker(cr.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-tick:
				cr.Reload(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog refresh triggered")
				cr.Reload(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload rebuilds the catalog from the remote API and returns its size.
func (cr *CatalogReloader) Reload(ctx context.Context) int {
	cr.logger.Info("refreshing catalog from remote")

	n := cr.store.Refresh(ctx, cr.fetch)
	if n == 0 {
		cr.logger.Warn("catalog refresh returned no drinks")
	}
	return n
}
