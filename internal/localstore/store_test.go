package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/store"
	"github.com/MrSnakeDoc/cocktails/internal/store/memory"
)

// failingKV wraps a memory store and fails writes on demand.
type failingKV struct {
	*memory.Store
	failSet    bool
	failDelete bool
	failGet    bool
	sets       int
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("read failed")
	}
	return f.Store.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingKV) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	return f.Store.Delete(ctx, key)
}

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *failingKV) {
	t.Helper()
	kv := &failingKV{Store: memory.New()}
	s := New(kv, logger.New("error", false), Options{Now: func() time.Time { return testNow }})
	return s, kv
}

func margarita() domain.CocktailSummary {
	return domain.CocktailSummary{ID: "11007", Name: "Margarita", Category: "Ordinary Drink", Glass: "Cocktail glass"}
}

func TestFavoritesEmptyWhenMissing(t *testing.T) {
	s, _ := newTestStore(t)

	favs := s.Favorites(context.Background())
	if favs == nil || len(favs) != 0 {
		t.Errorf("Favorites() = %v, want empty non-nil slice", favs)
	}
}

func TestCorruptValuesReadAsEmpty(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_ = kv.Store.Set(ctx, store.KeyFavorites, "{not json")
	_ = kv.Store.Set(ctx, store.KeySearchHistory, `"a string"`)

	if got := s.Favorites(ctx); len(got) != 0 {
		t.Errorf("Favorites() on corrupt value = %v", got)
	}
	if got := s.SearchHistory(ctx); len(got) != 0 {
		t.Errorf("SearchHistory() on corrupt value = %v", got)
	}
}

func TestReadFailureReadsAsEmpty(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddFavorite(ctx, margarita()); err != nil {
		t.Fatal(err)
	}
	kv.failGet = true

	if got := s.Favorites(ctx); len(got) != 0 {
		t.Errorf("Favorites() on read failure = %v", got)
	}
}

func TestAddFavorite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddFavorite(ctx, margarita())
	if err != nil || !added {
		t.Fatalf("AddFavorite = %v, %v; want true, nil", added, err)
	}

	added, err = s.AddFavorite(ctx, margarita())
	if err != nil || added {
		t.Fatalf("duplicate AddFavorite = %v, %v; want false, nil", added, err)
	}

	favs := s.Favorites(ctx)
	if len(favs) != 1 {
		t.Fatalf("len(Favorites()) = %d, want 1", len(favs))
	}
	if !favs[0].DateAdded.Equal(testNow) {
		t.Errorf("DateAdded = %v, want %v", favs[0].DateAdded, testNow)
	}
	if favs[0].Name != "Margarita" || favs[0].Glass != "Cocktail glass" {
		t.Errorf("unexpected record %+v", favs[0])
	}
}

func TestAddFavoriteWriteFailure(t *testing.T) {
	s, kv := newTestStore(t)
	kv.failSet = true

	added, err := s.AddFavorite(context.Background(), margarita())
	if added {
		t.Error("added should be false on write failure")
	}
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PersistenceError", err)
	}
	if pe.Key != store.KeyFavorites {
		t.Errorf("PersistenceError.Key = %q", pe.Key)
	}
}

func TestRemoveFavorite(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_, _ = s.AddFavorite(ctx, margarita())
	_, _ = s.AddFavorite(ctx, domain.CocktailSummary{ID: "11000", Name: "Mojito"})
	writes := kv.sets

	removed, err := s.RemoveFavorite(ctx, "99999")
	if err != nil || removed {
		t.Fatalf("RemoveFavorite(absent) = %v, %v", removed, err)
	}
	if kv.sets != writes {
		t.Error("RemoveFavorite(absent) should not write")
	}

	removed, err = s.RemoveFavorite(ctx, "11007")
	if err != nil || !removed {
		t.Fatalf("RemoveFavorite = %v, %v", removed, err)
	}
	if s.IsFavorite(ctx, "11007") {
		t.Error("11007 still a favorite")
	}
	if !s.IsFavorite(ctx, "11000") {
		t.Error("11000 should remain a favorite")
	}
}

func TestFavoritesRoundTripThroughSubstrate(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_, _ = s.AddFavorite(ctx, margarita())

	// A fresh store over the same substrate sees the same record.
	other := New(kv, logger.New("error", false), Options{})
	rec, ok := other.FindFavorite(ctx, "11007")
	if !ok {
		t.Fatal("favorite not found by second store")
	}
	if !rec.DateAdded.Equal(testNow) || rec.Category != "Ordinary Drink" {
		t.Errorf("round trip mismatch: %+v", rec)
	}
}

func TestMergeFavorites(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_, _ = s.AddFavorite(ctx, margarita())

	records := []domain.FavoriteRecord{
		{CocktailSummary: domain.CocktailSummary{ID: "11007", Name: "Margarita"}},
		{CocktailSummary: domain.CocktailSummary{ID: "11000", Name: "Mojito"}},
		{CocktailSummary: domain.CocktailSummary{ID: "11000", Name: "Mojito again"}},
	}
	added, dups, err := s.MergeFavorites(ctx, records)
	if err != nil {
		t.Fatal(err)
	}
	if added != 1 || dups != 2 {
		t.Errorf("MergeFavorites = (%d, %d), want (1, 2)", added, dups)
	}
	if n := len(s.Favorites(ctx)); n != 2 {
		t.Errorf("len(Favorites()) = %d, want 2", n)
	}

	writes := kv.sets
	added, dups, err = s.MergeFavorites(ctx, records[:2])
	if err != nil || added != 0 || dups != 2 {
		t.Errorf("second merge = (%d, %d, %v)", added, dups, err)
	}
	if kv.sets != writes {
		t.Error("merge with nothing new should not write")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_, _ = s.AddFavorite(ctx, margarita())
	s.AddSearchHistory(ctx, "rum")

	for i := 0; i < 2; i++ {
		if err := s.ClearFavorites(ctx); err != nil {
			t.Fatalf("ClearFavorites #%d: %v", i, err)
		}
		if err := s.ClearSearchHistory(ctx); err != nil {
			t.Fatalf("ClearSearchHistory #%d: %v", i, err)
		}
	}
	if len(s.Favorites(ctx)) != 0 || len(s.SearchHistory(ctx)) != 0 {
		t.Error("collections not empty after clear")
	}

	kv.failDelete = true
	var pe *domain.PersistenceError
	if err := s.ClearFavorites(ctx); !errors.As(err, &pe) {
		t.Errorf("ClearFavorites on failing substrate = %v", err)
	}
}

func TestAddSearchHistory(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddSearchHistory(ctx, "  Rum ")
	s.AddSearchHistory(ctx, "gin")
	s.AddSearchHistory(ctx, "x")
	s.AddSearchHistory(ctx, "RUM")

	got := s.SearchHistory(ctx)
	want := []string{"rum", "gin"}
	if len(got) != len(want) {
		t.Fatalf("SearchHistory() = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i].Term != w {
			t.Errorf("entry %d = %q, want %q", i, got[i].Term, w)
		}
	}
}

func TestAddSearchHistoryTruncates(t *testing.T) {
	kv := &failingKV{Store: memory.New()}
	s := New(kv, logger.New("error", false), Options{HistoryLimit: 3})
	ctx := context.Background()

	for _, term := range []string{"aa", "bb", "cc", "dd", "ee"} {
		s.AddSearchHistory(ctx, term)
	}

	got := s.SearchHistory(ctx)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Term != "ee" || got[2].Term != "cc" {
		t.Errorf("unexpected order %v", got)
	}
}

func TestAddSearchHistoryFailureIsSwallowed(t *testing.T) {
	s, kv := newTestStore(t)
	kv.failSet = true

	// Must not panic or surface anything.
	s.AddSearchHistory(context.Background(), "vodka")

	if len(s.SearchHistory(context.Background())) != 0 {
		t.Error("history should be empty after failed write")
	}
}

func TestSuggestions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, term := range []string{"rum punch", "dark rum", "gin", "rum sour", "rumba", "white rum", "rummy"} {
		s.AddSearchHistory(ctx, term)
	}

	got := s.Suggestions(ctx, "RUM")
	if len(got) != MaxSuggestions {
		t.Fatalf("Suggestions() = %v, want %d entries", got, MaxSuggestions)
	}
	if got[0] != "rummy" {
		t.Errorf("first suggestion = %q, want most recent match", got[0])
	}
	for _, g := range got {
		if g == "gin" {
			t.Error("non-matching term suggested")
		}
	}
}

func TestPruneSearchHistory(t *testing.T) {
	kv := &failingKV{Store: memory.New()}
	clock := testNow.Add(-48 * time.Hour)
	s := New(kv, logger.New("error", false), Options{Now: func() time.Time { return clock }})
	ctx := context.Background()

	s.AddSearchHistory(ctx, "old one")
	clock = testNow
	s.AddSearchHistory(ctx, "fresh")

	removed, err := s.PruneSearchHistory(ctx, testNow.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	got := s.SearchHistory(ctx)
	if len(got) != 1 || got[0].Term != "fresh" {
		t.Errorf("SearchHistory() after prune = %v", got)
	}

	removed, err = s.PruneSearchHistory(ctx, testNow.Add(-24*time.Hour))
	if err != nil || removed != 0 {
		t.Errorf("second prune = %d, %v", removed, err)
	}
}

func TestInfo(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if info := s.Info(ctx); info != (Info{}) {
		t.Errorf("Info() on empty store = %+v", info)
	}

	_, _ = s.AddFavorite(ctx, margarita())
	s.AddSearchHistory(ctx, "rum")

	info := s.Info(ctx)
	if info.FavoritesCount != 1 || info.SearchHistoryCount != 1 {
		t.Errorf("Info() counts = %+v", info)
	}
	if info.BytesUsed <= len(store.KeyFavorites)+len(store.KeySearchHistory) {
		t.Errorf("BytesUsed = %d, too small", info.BytesUsed)
	}
}
