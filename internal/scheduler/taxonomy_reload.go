package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/taxonomy"
)

// TaxonomyReloader handles periodic reloading of the catalog taxonomies
type TaxonomyReloader struct {
	source        taxonomy.Source
	cache         *taxonomy.Cache
	logger        logger.Logger
	interval      time.Duration
	timeout       time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewTaxonomyReloader creates a new taxonomy reloader
func NewTaxonomyReloader(
	source taxonomy.Source,
	cache *taxonomy.Cache,
	log logger.Logger,
	interval time.Duration,
	timeout time.Duration,
	manualTrigger chan struct{},
) *TaxonomyReloader {
	return &TaxonomyReloader{
		source:        source,
		cache:         cache,
		logger:        log,
		interval:      interval,
		timeout:       timeout,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the taxonomies once, then keeps them fresh in the background.
// A failed initial load is not fatal: search forms work without them.
func (tr *TaxonomyReloader) Start(ctx context.Context) error {
	tr.Reload(ctx)

	ticker := time.NewTicker(tr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tr.Reload(ctx)
			case <-tr.manualTrigger:
				tr.logger.Info("manual taxonomy reload triggered")
				tr.Reload(ctx)
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (tr *TaxonomyReloader) Stop() {
	close(tr.stopCh)
}

// Reload fetches the taxonomies and updates the cache. An entirely empty
// answer keeps the previous lists.
func (tr *TaxonomyReloader) Reload(ctx context.Context) {
	tr.logger.Debug("reloading taxonomies")

	rctx, cancel := context.WithTimeout(ctx, tr.timeout)
	defer cancel()

	lists := taxonomy.Load(rctx, tr.source)
	if lists.Empty() {
		tr.logger.Warn("taxonomy reload returned nothing, keeping previous lists",
			logger.Int("cached", tr.cache.Count()))
		return
	}

	tr.cache.Update(lists)
	tr.logger.Info("taxonomies reloaded",
		logger.Int("categories", len(lists.Categories)),
		logger.Int("glasses", len(lists.Glasses)),
		logger.Int("ingredients", len(lists.Ingredients)))
}
