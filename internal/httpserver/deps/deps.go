package deps

import (
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/catalog"
	"github.com/MrSnakeDoc/cocktails/internal/favorites"
	"github.com/MrSnakeDoc/cocktails/internal/localstore"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/search"
	"github.com/MrSnakeDoc/cocktails/internal/sources/presets"
	"github.com/MrSnakeDoc/cocktails/internal/store"
	"github.com/MrSnakeDoc/cocktails/internal/taxonomy"
)

type Deps struct {
	Logger                logger.Logger
	StartTime             time.Time
	Version               string
	Commit                string
	BuildDate             string
	GoVersion             string
	TimeNow               func() time.Time      // for testing, defaults to time.Now
	AllowedHosts          []string              // Host headers allowed to access the server
	AllowedCIDRS          []string              // IPs allowed to access readyz/infra/reload endpoints
	TrustProxy            bool                  // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst        int                   // per-IP burst on catalog-backed routes
	RateLimitPerMinute    int                   // per-IP refill rate on catalog-backed routes
	MaxImportBytes        int64                 // upper bound for favorites import bodies
	StoreBackend          string                // sqlite | redis | memory
	Store                 store.Pinger          // key-value substrate, pinged by readyz/infra
	Catalog               *catalog.Client       // remote recipe service
	LocalStore            *localstore.Store     // favorites and search history
	Search                *search.Coordinator   // search workflow
	Favorites             *favorites.Coordinator
	Taxonomy              *taxonomy.Cache       // preloaded category/glass/ingredient lists
	Presets               *presets.Registry     // nil if presets disabled
	TaxonomyReloadTrigger chan struct{}         // Channel to trigger manual taxonomy reload
	PresetReloadTrigger   chan struct{}         // Channel to trigger manual preset reload (nil if presets disabled)
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
