package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/sources/presets"
)

// PresetReloader handles periodic reloading of saved search presets
type PresetReloader struct {
	loader        *presets.Loader
	mapper        *presets.Mapper
	registry      *presets.Registry
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPresetReloader creates a new preset reloader
func NewPresetReloader(
	presetFile string,
	registry *presets.Registry,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *PresetReloader {
	return &PresetReloader{
		loader:        presets.NewLoader(presetFile),
		mapper:        presets.NewMapper(),
		registry:      registry,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (pr *PresetReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := pr.Reload(ctx); err != nil {
		return fmt.Errorf("initial preset reload failed: %w", err)
	}

	ticker := time.NewTicker(pr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := pr.Reload(ctx); err != nil {
					pr.logger.Error("failed to reload presets",
						logger.Error(err))
				}
			case <-pr.manualTrigger:
				pr.logger.Info("manual preset reload triggered")
				if err := pr.Reload(ctx); err != nil {
					pr.logger.Error("failed to reload presets",
						logger.Error(err))
				}
			case <-pr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (pr *PresetReloader) Stop() {
	close(pr.stopCh)
}

// Reload parses the presets file and replaces the registry content. On
// error the registry keeps its previous presets.
func (pr *PresetReloader) Reload(_ context.Context) error {
	config, err := pr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	list, err := pr.mapper.MapPresets(config)
	if err != nil {
		return fmt.Errorf("failed to map presets: %w", err)
	}

	pr.registry.Update(list)
	pr.logger.Info("loaded search presets",
		logger.Int("count", len(list)))

	return nil
}
