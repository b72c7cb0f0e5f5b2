package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by COCKTAIL_STORE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout applied by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Catalog (remote recipe service)
	CatalogBaseURL   string        // ex: https://www.thecocktaildb.com/api/json/v1/1
	CatalogTimeout   time.Duration // per-call HTTP timeout
	RandomSampleSize int           // random cocktails fetched when no base criterion is given

	// Search
	ItemsPerPage  int           // results per page
	DebounceDelay time.Duration // quiet period for live typing

	// Local store
	StoreBackend     string        // sqlite | redis | memory
	SQLitePath       string        // database file for the sqlite backend
	HistoryLimit     int           // max remembered search terms
	HistoryRetention time.Duration // prune history entries older than this (0 = keep)
	PruneInterval    time.Duration // how often the history pruner runs
	MaxImportBytes   int64         // upper bound for a favorites import body

	// Presets & taxonomy
	PresetFile      string        // optional YAML file of saved searches (empty = disabled)
	ReloadInterval  time.Duration // taxonomy and preset refresh interval
	TaxonomyTimeout time.Duration // timeout for one taxonomy refresh

	// Redis (only when StoreBackend == redis)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Access restrictions
	AllowedHosts       []string // optional, Host headers the server answers to (empty = any)
	AllowedCIDRS       []string // optional, restrict /infra and reload endpoints to these IPs/CIDRs
	TrustProxy         bool     // true => trust X-Forwarded-For headers
	RateLimitBurst     int      // search requests allowed in a burst per client IP
	RateLimitPerMinute int      // refill rate per client IP
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("COCKTAIL_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("COCKTAIL_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("COCKTAIL_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("COCKTAIL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("COCKTAIL_PRETTY_LOG", true),

		// Catalog
		CatalogBaseURL:   strings.TrimRight(getenv("COCKTAIL_CATALOG_URL", "https://www.thecocktaildb.com/api/json/v1/1"), "/"),
		CatalogTimeout:   mustDuration("COCKTAIL_CATALOG_TIMEOUT", 10*time.Second),
		RandomSampleSize: getenvInt("COCKTAIL_RANDOM_SAMPLE_SIZE", 20),

		// Search
		ItemsPerPage:  getenvInt("COCKTAIL_ITEMS_PER_PAGE", 10),
		DebounceDelay: mustDuration("COCKTAIL_DEBOUNCE_DELAY", 500*time.Millisecond),

		// Local store
		StoreBackend:     strings.ToLower(getenv("COCKTAIL_STORE_BACKEND", BackendSQLite)),
		SQLitePath:       getenv("COCKTAIL_SQLITE_PATH", "./data/cocktails.db"),
		HistoryLimit:     getenvInt("COCKTAIL_HISTORY_LIMIT", 10),
		HistoryRetention: mustDuration("COCKTAIL_HISTORY_RETENTION", 0),
		PruneInterval:    mustDuration("COCKTAIL_PRUNE_INTERVAL", 24*time.Hour),
		MaxImportBytes:   int64(getenvInt("COCKTAIL_MAX_IMPORT_BYTES", 1<<20)),

		// Presets & taxonomy
		PresetFile:      getenv("COCKTAIL_PRESET_FILE", ""), // Optional, empty = presets disabled
		ReloadInterval:  mustDuration("COCKTAIL_RELOAD_INTERVAL", 24*time.Hour),
		TaxonomyTimeout: mustDuration("COCKTAIL_TAXONOMY_TIMEOUT", 30*time.Second),

		// Redis settings
		RedisAddr:           getenv("COCKTAIL_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("COCKTAIL_REDIS_USERNAME", ""),
		RedisPassword:       getenv("COCKTAIL_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("COCKTAIL_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts:       splitAndTrim(getenv("COCKTAIL_ALLOWED_HOSTS", "")),
		AllowedCIDRS:       parseAllowedIPs(getenv("COCKTAIL_ALLOWED_CIDRS", "")),
		TrustProxy:         mustBool("COCKTAIL_TRUST_PROXY", false),
		RateLimitBurst:     getenvInt("COCKTAIL_RATE_LIMIT_BURST", 30),
		RateLimitPerMinute: getenvInt("COCKTAIL_RATE_LIMIT_PER_MINUTE", 60),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown COCKTAIL_STORE_BACKEND %q (want sqlite, redis or memory)", c.StoreBackend)
	}
	if c.StoreBackend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("COCKTAIL_SQLITE_PATH is required for the sqlite backend")
	}
	if c.ItemsPerPage < 1 {
		return fmt.Errorf("COCKTAIL_ITEMS_PER_PAGE must be >= 1, got %d", c.ItemsPerPage)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("COCKTAIL_HISTORY_LIMIT must be >= 1, got %d", c.HistoryLimit)
	}
	if c.RandomSampleSize < 1 {
		return fmt.Errorf("COCKTAIL_RANDOM_SAMPLE_SIZE must be >= 1, got %d", c.RandomSampleSize)
	}
	if c.CatalogBaseURL == "" {
		return fmt.Errorf("COCKTAIL_CATALOG_URL must not be empty")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
