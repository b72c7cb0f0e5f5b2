// Package favorites implements the favorites workflow on top of the local
// store: toggling, import, export and statistics.
package favorites

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/export"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
)

// Store is the subset of the local store the coordinator needs.
type Store interface {
	Favorites(ctx context.Context) []domain.FavoriteRecord
	FindFavorite(ctx context.Context, id string) (domain.FavoriteRecord, bool)
	IsFavorite(ctx context.Context, id string) bool
	AddFavorite(ctx context.Context, c domain.CocktailSummary) (bool, error)
	RemoveFavorite(ctx context.Context, id string) (bool, error)
	MergeFavorites(ctx context.Context, records []domain.FavoriteRecord) (added, duplicates int, err error)
	ClearFavorites(ctx context.Context) error
}

// Resolver fetches a full record from the catalog. A nil record with a nil
// error means the id is unknown.
type Resolver interface {
	GetByID(ctx context.Context, id string) (*domain.CocktailDetail, error)
}

// Cache is an in-memory set of records the caller already holds, such as
// the current search results.
type Cache interface {
	Lookup(id string) (domain.CocktailSummary, bool)
}

// Listener receives the new favorites count after every change.
type Listener func(count int)

// Acknowledger is the transient, cosmetic reaction to a change. It runs in
// its own goroutine and never blocks the caller.
type Acknowledger func(id string, added bool)

// ToggleResult reports what Toggle did.
type ToggleResult struct {
	ID         string `json:"id"`
	Added      bool   `json:"added"`
	IsFavorite bool   `json:"isFavorite"`
	Count      int    `json:"count"`
}

// Coordinator is safe for concurrent use. The store guards every
// read-modify-write; mu only protects the registered callbacks.
type Coordinator struct {
	store    Store
	resolver Resolver
	cache    Cache
	logger   logger.Logger
	now      func() time.Time

	mu        sync.RWMutex
	listeners []Listener
	ack       Acknowledger
}

// Options tunes a Coordinator.
type Options struct {
	Cache Cache            // optional
	Now   func() time.Time // for testing
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(store Store, resolver Resolver, log logger.Logger, opts Options) *Coordinator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator{
		store:    store,
		resolver: resolver,
		cache:    opts.Cache,
		logger:   log,
		now:      opts.Now,
	}
}

// OnChange registers a listener for count changes.
func (c *Coordinator) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// SetAcknowledger installs the animate reaction, replacing any previous one.
func (c *Coordinator) SetAcknowledger(a Acknowledger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ack = a
}

// Toggle removes id when it is a favorite and adds it otherwise. The record
// to add is resolved from the cache, then the stored favorites, then the
// catalog; a *domain.NotFoundError is returned when none knows it.
func (c *Coordinator) Toggle(ctx context.Context, id string, animate bool) (ToggleResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ToggleResult{}, domain.NewValidationError("cocktail id is required")
	}

	if c.store.IsFavorite(ctx, id) {
		if _, err := c.Remove(ctx, id, animate); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{ID: id, Count: c.Count(ctx)}, nil
	}

	added, err := c.AddByID(ctx, id, animate)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{ID: id, Added: added, IsFavorite: true, Count: c.Count(ctx)}, nil
}

// AddByID resolves id the same way Toggle does and stores it.
func (c *Coordinator) AddByID(ctx context.Context, id string, animate bool) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, domain.NewValidationError("cocktail id is required")
	}
	summary, err := c.resolve(ctx, id)
	if err != nil {
		return false, err
	}
	return c.Add(ctx, summary, animate)
}

func (c *Coordinator) resolve(ctx context.Context, id string) (domain.CocktailSummary, error) {
	if c.cache != nil {
		if s, ok := c.cache.Lookup(id); ok {
			return s, nil
		}
	}
	if f, ok := c.store.FindFavorite(ctx, id); ok {
		return f.CocktailSummary, nil
	}

	detail, err := c.resolver.GetByID(ctx, id)
	if err != nil {
		return domain.CocktailSummary{}, err
	}
	if detail == nil {
		return domain.CocktailSummary{}, &domain.NotFoundError{Kind: "cocktail", ID: id}
	}
	return detail.CocktailSummary, nil
}

// Add stores s as a favorite. It returns false without error when s is
// already a favorite.
func (c *Coordinator) Add(ctx context.Context, s domain.CocktailSummary, animate bool) (bool, error) {
	added, err := c.store.AddFavorite(ctx, s)
	if err != nil {
		return false, err
	}
	if added {
		c.logger.Debug("favorite added", logger.String("id", s.ID), logger.String("name", s.Name))
		c.changed(ctx, s.ID, true, animate)
	}
	return added, nil
}

// Remove deletes id from the favorites and reports whether it was present.
func (c *Coordinator) Remove(ctx context.Context, id string, animate bool) (bool, error) {
	removed, err := c.store.RemoveFavorite(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		c.logger.Debug("favorite removed", logger.String("id", id))
		c.changed(ctx, id, false, animate)
	}
	return removed, nil
}

// Clear drops every favorite.
func (c *Coordinator) Clear(ctx context.Context) error {
	if err := c.store.ClearFavorites(ctx); err != nil {
		return err
	}
	c.logger.Info("favorites cleared")
	c.changed(ctx, "", false, false)
	return nil
}

// Count returns the number of favorites.
func (c *Coordinator) Count(ctx context.Context) int {
	return len(c.store.Favorites(ctx))
}

// Export renders the favorites in format.
func (c *Coordinator) Export(ctx context.Context, format export.Format) (export.Document, error) {
	return export.Favorites(c.store.Favorites(ctx), format, c.now())
}

func (c *Coordinator) changed(ctx context.Context, id string, added, animate bool) {
	c.mu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	ack := c.ack
	c.mu.RUnlock()

	if len(listeners) > 0 {
		count := c.Count(ctx)
		for _, l := range listeners {
			l(count)
		}
	}
	if animate && ack != nil {
		go ack(id, added)
	}
}
