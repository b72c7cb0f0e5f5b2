// Package taxonomy keeps the catalog's category, glass and ingredient lists
// in memory so search forms do not hit the remote service on every render.
package taxonomy

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source lists the catalog taxonomies. Implementations absorb their own
// failures and return empty lists.
type Source interface {
	ListCategories(ctx context.Context) []string
	ListGlasses(ctx context.Context) []string
	ListIngredients(ctx context.Context) []string
}

// Lists is one snapshot of the three taxonomies.
type Lists struct {
	Categories  []string  `json:"categories"`
	Glasses     []string  `json:"glasses"`
	Ingredients []string  `json:"ingredients"`
	LoadedAt    time.Time `json:"loadedAt"`
}

// Empty reports whether every list is empty.
func (l Lists) Empty() bool {
	return len(l.Categories) == 0 && len(l.Glasses) == 0 && len(l.Ingredients) == 0
}

// Load fetches the three lists concurrently.
func Load(ctx context.Context, src Source) Lists {
	var l Lists
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { l.Categories = src.ListCategories(gctx); return nil })
	g.Go(func() error { l.Glasses = src.ListGlasses(gctx); return nil })
	g.Go(func() error { l.Ingredients = src.ListIngredients(gctx); return nil })
	_ = g.Wait()

	l.LoadedAt = time.Now()
	return l
}

// Cache provides in-memory storage for the taxonomy lists
type Cache struct {
	mu         sync.RWMutex
	lists      Lists
	lastReload time.Time
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		lists: Lists{
			Categories:  []string{},
			Glasses:     []string{},
			Ingredients: []string{},
		},
	}
}

// Update replaces the cached lists
func (c *Cache) Update(l Lists) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lists = Lists{
		Categories:  nonNil(l.Categories),
		Glasses:     nonNil(l.Glasses),
		Ingredients: nonNil(l.Ingredients),
		LoadedAt:    l.LoadedAt,
	}
	c.lastReload = time.Now()
}

// Snapshot returns a copy of the cached lists
func (c *Cache) Snapshot() Lists {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Lists{
		Categories:  append([]string{}, c.lists.Categories...),
		Glasses:     append([]string{}, c.lists.Glasses...),
		Ingredients: append([]string{}, c.lists.Ingredients...),
		LoadedAt:    c.lists.LoadedAt,
	}
}

// Count returns the total number of cached entries
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.lists.Categories) + len(c.lists.Glasses) + len(c.lists.Ingredients)
}

// GetLastReload returns the timestamp of the last update
func (c *Cache) GetLastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
