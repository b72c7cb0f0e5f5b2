package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/logger"
)

// HistoryStore is the part of the local store the pruner needs
type HistoryStore interface {
	PruneSearchHistory(ctx context.Context, cutoff time.Time) (int, error)
}

// HistoryPruner drops search history entries older than the retention
type HistoryPruner struct {
	store     HistoryStore
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewHistoryPruner creates a new history pruner
func NewHistoryPruner(
	store HistoryStore,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *HistoryPruner {
	return &HistoryPruner{
		store:     store,
		logger:    log,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic pruning process
func (hp *HistoryPruner) Start(ctx context.Context) error {
	// Run immediately on start
	if err := hp.Prune(ctx); err != nil {
		hp.logger.Warn("initial history pruning failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(hp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := hp.Prune(ctx); err != nil {
					hp.logger.Error("history pruning failed",
						logger.Error(err))
				}
			case <-hp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner
func (hp *HistoryPruner) Stop() {
	close(hp.stopCh)
}

// Prune removes entries recorded before now minus the retention
func (hp *HistoryPruner) Prune(ctx context.Context) error {
	cutoff := hp.now().Add(-hp.retention)

	removed, err := hp.store.PruneSearchHistory(ctx, cutoff)
	if err != nil {
		return err
	}

	if removed > 0 {
		hp.logger.Info("pruned search history",
			logger.Int("removed", removed),
			logger.String("older_than", hp.retention.String()))
	} else {
		hp.logger.Debug("no search history to prune")
	}
	return nil
}
