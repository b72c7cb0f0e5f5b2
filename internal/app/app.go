package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/catalog"
	"github.com/MrSnakeDoc/cocktails/internal/config"
	"github.com/MrSnakeDoc/cocktails/internal/favorites"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/localstore"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/redis"
	"github.com/MrSnakeDoc/cocktails/internal/scheduler"
	"github.com/MrSnakeDoc/cocktails/internal/search"
	"github.com/MrSnakeDoc/cocktails/internal/sources/presets"
	"github.com/MrSnakeDoc/cocktails/internal/store"
	"github.com/MrSnakeDoc/cocktails/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/cocktails/internal/store/redis"
	"github.com/MrSnakeDoc/cocktails/internal/store/sqlite"
	"github.com/MrSnakeDoc/cocktails/internal/taxonomy"
	"github.com/MrSnakeDoc/cocktails/internal/utils"
	"github.com/MrSnakeDoc/cocktails/internal/version"
)

// kvBackend is a key-value substrate the app can ping and close.
type kvBackend interface {
	store.KV
	store.Pinger
}

type App struct {
	cfg              *config.Config
	logger           logger.Logger
	server           *httpserver.Server
	closers          map[string]io.Closer
	search           *search.Coordinator
	taxonomyReloader *scheduler.TaxonomyReloader
	presetReloader   *scheduler.PresetReloader
	pruner           *scheduler.HistoryPruner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the local store substrate early - fail fast if unavailable
	kv, closers, err := openBackend(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}
	loggerClient.Info("local store initialized", logger.String("backend", cfg.StoreBackend))

	localStore := localstore.New(kv, component(loggerClient, "localstore"), localstore.Options{HistoryLimit: cfg.HistoryLimit})

	catalogClient := catalog.New(catalog.Options{
		BaseURL:          cfg.CatalogBaseURL,
		Timeout:          cfg.CatalogTimeout,
		RandomSampleSize: cfg.RandomSampleSize,
	}, component(loggerClient, "catalog"))

	searchCoordinator := search.NewCoordinator(catalogClient, localStore, component(loggerClient, "search"), search.Options{
		ItemsPerPage:  cfg.ItemsPerPage,
		DebounceDelay: cfg.DebounceDelay,
		QuickTimeout:  cfg.CatalogTimeout,
	})

	favoritesCoordinator := favorites.NewCoordinator(localStore, catalogClient, component(loggerClient, "favorites"), favorites.Options{
		Cache: searchCoordinator,
	})
	favoritesCoordinator.OnChange(func(count int) {
		loggerClient.Debug("favorites count changed", logger.Int("count", count))
	})
	favoritesCoordinator.SetAcknowledger(func(id string, added bool) {
		loggerClient.Info("favorite acknowledged",
			logger.String("id", id),
			logger.Bool("added", added))
	})

	// Taxonomy preload with manual reload trigger
	taxonomyCache := taxonomy.NewCache()
	taxonomyReloadTrigger := make(chan struct{}, 1)
	taxonomyReloader := scheduler.NewTaxonomyReloader(
		catalogClient,
		taxonomyCache,
		component(loggerClient, "taxonomy"),
		cfg.ReloadInterval,
		cfg.TaxonomyTimeout,
		taxonomyReloadTrigger,
	)

	// Saved search presets (if a preset file is configured)
	var presetRegistry *presets.Registry
	var presetReloader *scheduler.PresetReloader
	var presetReloadTrigger chan struct{}
	if cfg.PresetFile != "" {
		loggerClient.Info("preset file configured, initializing preset reloader",
			logger.String("file", cfg.PresetFile))
		presetRegistry = presets.NewRegistry()
		presetReloadTrigger = make(chan struct{}, 1)
		presetReloader = scheduler.NewPresetReloader(
			cfg.PresetFile,
			presetRegistry,
			component(loggerClient, "presets"),
			cfg.ReloadInterval,
			presetReloadTrigger,
		)
	} else {
		loggerClient.Info("preset file not configured, presets disabled")
	}

	// Search history retention (if configured)
	var pruner *scheduler.HistoryPruner
	if cfg.HistoryRetention > 0 {
		pruner = scheduler.NewHistoryPruner(localStore, component(loggerClient, "pruner"), cfg.PruneInterval, cfg.HistoryRetention)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:                loggerClient,
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		TimeNow:               time.Now,
		AllowedHosts:          cfg.AllowedHosts,
		AllowedCIDRS:          cfg.AllowedCIDRS,
		TrustProxy:            cfg.TrustProxy,
		RateLimitBurst:        cfg.RateLimitBurst,
		RateLimitPerMinute:    cfg.RateLimitPerMinute,
		MaxImportBytes:        cfg.MaxImportBytes,
		StoreBackend:          cfg.StoreBackend,
		Store:                 kv,
		Catalog:               catalogClient,
		LocalStore:            localStore,
		Search:                searchCoordinator,
		Favorites:             favoritesCoordinator,
		Taxonomy:              taxonomyCache,
		Presets:               presetRegistry,
		TaxonomyReloadTrigger: taxonomyReloadTrigger,
		PresetReloadTrigger:   presetReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:              cfg,
		logger:           loggerClient,
		server:           server,
		closers:          closers,
		search:           searchCoordinator,
		taxonomyReloader: taxonomyReloader,
		presetReloader:   presetReloader,
		pruner:           pruner,
	}
}

func component(log logger.Logger, name string) logger.Logger {
	return log.With(logger.String("component", name))
}

// openBackend opens the configured substrate and returns what must be
// closed on shutdown, keyed by component name.
func openBackend(cfg *config.Config, log logger.Logger) (kvBackend, map[string]io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(client), map[string]io.Closer{"redis": client}, nil

	case config.BackendMemory:
		log.Warn("memory backend selected, favorites and history are lost on restart")
		return memory.New(), nil, nil

	default:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, map[string]io.Closer{"sqlite": db}, nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🍸 Starting Cocktails v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Cocktails %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start taxonomy reloader (preloads lists and starts periodic refresh)
	if err := a.taxonomyReloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start taxonomy reloader: %w", err)
	}
	a.logger.Info("taxonomy reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start preset reloader (if enabled)
	if a.presetReloader != nil {
		if err := a.presetReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start preset reloader: %w", err)
		}
		a.logger.Info("preset reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start history pruner (if enabled)
	if a.pruner != nil {
		if err := a.pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start history pruner: %w", err)
		}
		a.logger.Info("history pruner started",
			logger.Duration("interval", a.cfg.PruneInterval),
			logger.Duration("retention", a.cfg.HistoryRetention))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.shutdownBackground()
		return err
	}

	a.shutdownBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	for name, c := range a.closers {
		utils.CloseLogged(c, name, a.logger)
	}

	a.logger.Info("✅ Cocktails stopped cleanly")
	_ = a.logger.Sync()
	return nil
}

// shutdownBackground stops every background goroutine the app started.
func (a *App) shutdownBackground() {
	a.taxonomyReloader.Stop()
	if a.presetReloader != nil {
		a.presetReloader.Stop()
	}
	if a.pruner != nil {
		a.pruner.Stop()
	}
	a.search.Close()
}
