package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COCKTAIL_STORE_BACKEND", "")
	t.Setenv("COCKTAIL_ITEMS_PER_PAGE", "")

	cfg := Load()
	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendSQLite)
	}
	if cfg.ItemsPerPage != 10 {
		t.Errorf("ItemsPerPage = %d, want 10", cfg.ItemsPerPage)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.RandomSampleSize != 20 {
		t.Errorf("RandomSampleSize = %d, want 20", cfg.RandomSampleSize)
	}
	if cfg.DebounceDelay != 500*time.Millisecond {
		t.Errorf("DebounceDelay = %v, want 500ms", cfg.DebounceDelay)
	}
}

func TestLoadPanicsOnUnknownBackend(t *testing.T) {
	t.Setenv("COCKTAIL_STORE_BACKEND", "mongo")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked")
		}
	}()
	Load()
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreBackend:     BackendMemory,
		ItemsPerPage:     10,
		HistoryLimit:     10,
		RandomSampleSize: 20,
		CatalogBaseURL:   "http://catalog",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "etcd" }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.StoreBackend = BackendSQLite }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.ItemsPerPage = 0 }, wantErr: true},
		{name: "zero history", mutate: func(c *Config) { c.HistoryLimit = 0 }, wantErr: true},
		{name: "zero sample", mutate: func(c *Config) { c.RandomSampleSize = 0 }, wantErr: true},
		{name: "empty catalog url", mutate: func(c *Config) { c.CatalogBaseURL = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "single value", value: "10.0.0.0/8", expected: []string{"10.0.0.0/8"}},
		{name: "multiple values", value: "1.2.3.4, 5.6.7.8 ,", expected: []string{"1.2.3.4", "5.6.7.8"}},
		{name: "quoted", value: `"127.0.0.1"`, expected: []string{"127.0.0.1"}},
		{name: "empty", value: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_INVALID", "not_a_number")

	if got := getenvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %d, want 42", got)
	}
	if got := getenvInt("TEST_INT_INVALID", 7); got != 7 {
		t.Errorf("getenvInt() invalid = %d, want default 7", got)
	}
	if got := getenvInt("TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("getenvInt() missing = %d, want default 3", got)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
