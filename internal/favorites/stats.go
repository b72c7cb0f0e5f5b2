package favorites

import (
	"context"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
)

// Stats summarizes the favorites collection.
type Stats struct {
	Total      int                    `json:"total"`
	Categories map[string]int         `json:"categories"`
	Glasses    map[string]int         `json:"glasses"`
	Oldest     *domain.FavoriteRecord `json:"oldestFavorite"`
	Newest     *domain.FavoriteRecord `json:"newestFavorite"`
}

// Stats counts favorites per category and glass (only where set) and finds
// the oldest and newest by DateAdded. On ties the earlier record wins.
func (c *Coordinator) Stats(ctx context.Context) Stats {
	return computeStats(c.store.Favorites(ctx))
}

func computeStats(favs []domain.FavoriteRecord) Stats {
	s := Stats{
		Total:      len(favs),
		Categories: map[string]int{},
		Glasses:    map[string]int{},
	}
	if len(favs) == 0 {
		return s
	}

	oldest, newest := 0, 0
	for i, f := range favs {
		if f.Category != "" {
			s.Categories[f.Category]++
		}
		if f.Glass != "" {
			s.Glasses[f.Glass]++
		}
		if f.DateAdded.Before(favs[oldest].DateAdded) {
			oldest = i
		}
		if f.DateAdded.After(favs[newest].DateAdded) {
			newest = i
		}
	}

	o, n := favs[oldest], favs[newest]
	s.Oldest, s.Newest = &o, &n
	return s
}
