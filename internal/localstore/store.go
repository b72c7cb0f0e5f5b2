// Package localstore owns the persisted Favorites and Search History
// collections. It is the only writer of the key-value substrate.
package localstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/store"
)

const (
	// DefaultHistoryLimit bounds the search history.
	DefaultHistoryLimit = 10
	// MaxSuggestions bounds Suggestions.
	MaxSuggestions = 5
)

// Options tunes a Store.
type Options struct {
	HistoryLimit int              // defaults to DefaultHistoryLimit
	Now          func() time.Time // for testing, defaults to time.Now
}

// Store persists favorites and search history as one JSON value per
// collection. Every mutation reads the whole collection, applies the
// change and writes it back while holding mu.
type Store struct {
	mu           sync.Mutex
	kv           store.KV
	logger       logger.Logger
	historyLimit int
	now          func() time.Time
}

// Info summarizes what the store holds.
type Info struct {
	FavoritesCount     int `json:"favoritesCount"`
	SearchHistoryCount int `json:"searchHistoryCount"`
	BytesUsed          int `json:"bytesUsed"`
}

// New creates a Store over kv.
func New(kv store.KV, log logger.Logger, opts Options) *Store {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		kv:           kv,
		logger:       log,
		historyLimit: opts.HistoryLimit,
		now:          opts.Now,
	}
}

// ─────────────────────────────────────────────────────────────────
// Favorites
// ─────────────────────────────────────────────────────────────────

// Favorites returns the persisted favorites in insertion order. A missing,
// unreadable or corrupt value reads as an empty collection.
func (s *Store) Favorites(ctx context.Context) []domain.FavoriteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadFavorites(ctx)
}

// AddFavorite appends c unless its id is already present.
// It returns (false, nil) for a duplicate and (false, *PersistenceError)
// when the write fails.
func (s *Store) AddFavorite(ctx context.Context, c domain.CocktailSummary) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.loadFavorites(ctx)
	if indexOf(favs, c.ID) >= 0 {
		return false, nil
	}

	favs = append(favs, domain.NewFavorite(c, s.now()))
	if err := s.saveFavorites(ctx, favs); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFavorite deletes the favorite with id and reports whether anything
// changed. Nothing is written when id is absent.
func (s *Store) RemoveFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.loadFavorites(ctx)
	i := indexOf(favs, id)
	if i < 0 {
		return false, nil
	}

	favs = append(favs[:i], favs[i+1:]...)
	if err := s.saveFavorites(ctx, favs); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorite reports whether id is in the persisted favorites.
func (s *Store) IsFavorite(ctx context.Context, id string) bool {
	_, ok := s.FindFavorite(ctx, id)
	return ok
}

// FindFavorite returns the favorite with id.
func (s *Store) FindFavorite(ctx context.Context, id string) (domain.FavoriteRecord, bool) {
	favs := s.Favorites(ctx)
	if i := indexOf(favs, id); i >= 0 {
		return favs[i], true
	}
	return domain.FavoriteRecord{}, false
}

// MergeFavorites appends every record whose id is not yet present (neither
// stored nor earlier in records) and writes once. Nothing is written when
// no record is new.
func (s *Store) MergeFavorites(ctx context.Context, records []domain.FavoriteRecord) (added, duplicates int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.loadFavorites(ctx)
	seen := make(map[string]bool, len(favs)+len(records))
	for _, f := range favs {
		seen[f.ID] = true
	}

	for _, r := range records {
		if seen[r.ID] {
			duplicates++
			continue
		}
		seen[r.ID] = true
		favs = append(favs, r)
		added++
	}

	if added == 0 {
		return 0, duplicates, nil
	}
	if err := s.saveFavorites(ctx, favs); err != nil {
		return 0, duplicates, err
	}
	return added, duplicates, nil
}

// ClearFavorites deletes the favorites collection. Idempotent.
func (s *Store) ClearFavorites(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clear(ctx, store.KeyFavorites)
}

func (s *Store) loadFavorites(ctx context.Context) []domain.FavoriteRecord {
	raw, ok := s.read(ctx, store.KeyFavorites)
	if !ok {
		return []domain.FavoriteRecord{}
	}
	favs, err := decodeFavorites(raw)
	if err != nil {
		s.logger.Warn("corrupt favorites value, reading as empty",
			logger.Error(err))
		return []domain.FavoriteRecord{}
	}
	return favs
}

func (s *Store) saveFavorites(ctx context.Context, favs []domain.FavoriteRecord) error {
	raw, err := encodeFavorites(favs)
	if err != nil {
		return &domain.PersistenceError{Key: store.KeyFavorites, Err: err}
	}
	return s.write(ctx, store.KeyFavorites, raw)
}

func indexOf(favs []domain.FavoriteRecord, id string) int {
	for i, f := range favs {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// ─────────────────────────────────────────────────────────────────
// Search history
// ─────────────────────────────────────────────────────────────────

// SearchHistory returns remembered terms, most recent first.
func (s *Store) SearchHistory(ctx context.Context) []domain.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadHistory(ctx)
}

// AddSearchHistory records term at the front of the history. Terms shorter
// than two characters are ignored; an existing equal term moves to the
// front; the history is truncated to the limit. Failures are logged only.
func (s *Store) AddSearchHistory(ctx context.Context, term string) {
	if !domain.ValidTerm(term) {
		return
	}
	clean := domain.NormalizeTerm(term)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.loadHistory(ctx)
	next := make([]domain.SearchHistoryEntry, 0, len(history)+1)
	next = append(next, domain.SearchHistoryEntry{Term: clean, Timestamp: s.now()})
	for _, e := range history {
		if e.Term != clean {
			next = append(next, e)
		}
	}
	if len(next) > s.historyLimit {
		next = next[:s.historyLimit]
	}

	if err := s.saveHistory(ctx, next); err != nil {
		s.logger.Warn("failed to record search history",
			logger.String("term", clean),
			logger.Error(err))
	}
}

// Suggestions returns up to MaxSuggestions remembered terms containing query.
func (s *Store) Suggestions(ctx context.Context, query string) []string {
	q := strings.ToLower(query)
	out := make([]string, 0, MaxSuggestions)
	for _, e := range s.SearchHistory(ctx) {
		if len(out) == MaxSuggestions {
			break
		}
		if strings.Contains(e.Term, q) {
			out = append(out, e.Term)
		}
	}
	return out
}

// PruneSearchHistory drops entries recorded before cutoff and returns how
// many were removed.
func (s *Store) PruneSearchHistory(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.loadHistory(ctx)
	kept := make([]domain.SearchHistoryEntry, 0, len(history))
	for _, e := range history {
		if !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
		}
	}

	removed := len(history) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.saveHistory(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearSearchHistory deletes the history collection. Idempotent.
func (s *Store) ClearSearchHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clear(ctx, store.KeySearchHistory)
}

func (s *Store) loadHistory(ctx context.Context) []domain.SearchHistoryEntry {
	raw, ok := s.read(ctx, store.KeySearchHistory)
	if !ok {
		return []domain.SearchHistoryEntry{}
	}
	entries, err := decodeHistory(raw)
	if err != nil {
		s.logger.Warn("corrupt search history value, reading as empty",
			logger.Error(err))
		return []domain.SearchHistoryEntry{}
	}
	return entries
}

func (s *Store) saveHistory(ctx context.Context, entries []domain.SearchHistoryEntry) error {
	raw, err := encodeHistory(entries)
	if err != nil {
		return &domain.PersistenceError{Key: store.KeySearchHistory, Err: err}
	}
	return s.write(ctx, store.KeySearchHistory, raw)
}

// ─────────────────────────────────────────────────────────────────
// Substrate access
// ─────────────────────────────────────────────────────────────────

// Info reports collection sizes and the bytes both values occupy.
func (s *Store) Info(ctx context.Context) Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := Info{
		FavoritesCount:     len(s.loadFavorites(ctx)),
		SearchHistoryCount: len(s.loadHistory(ctx)),
	}
	for _, key := range []string{store.KeyFavorites, store.KeySearchHistory} {
		if raw, ok := s.read(ctx, key); ok {
			info.BytesUsed += len(key) + len(raw)
		}
	}
	return info
}

// read returns the raw value; substrate failures are logged and read as absent.
func (s *Store) read(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("local store read failed, reading as empty",
			logger.String("key", key),
			logger.Error(err))
		return "", false
	}
	return raw, ok
}

func (s *Store) write(ctx context.Context, key, raw string) error {
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.logger.Error("local store write failed",
			logger.String("key", key),
			logger.Error(err))
		return &domain.PersistenceError{Key: key, Err: err}
	}
	return nil
}

func (s *Store) clear(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Error("local store clear failed",
			logger.String("key", key),
			logger.Error(err))
		return &domain.PersistenceError{Key: key, Err: err}
	}
	return nil
}
