package localstore

import (
	"encoding/json"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
)

// favoriteRow is the persisted layout of a favorite. Field names match the
// catalog's wire names so existing browser exports stay readable.
type favoriteRow struct {
	ID           string `json:"idDrink"`
	Name         string `json:"strDrink"`
	ThumbnailURL string `json:"strDrinkThumb"`
	Category     string `json:"strCategory"`
	Glass        string `json:"strGlass"`
	DateAdded    string `json:"dateAdded"`
}

type historyRow struct {
	Term      string `json:"term"`
	Timestamp string `json:"timestamp"`
}

func encodeFavorites(favs []domain.FavoriteRecord) (string, error) {
	rows := make([]favoriteRow, 0, len(favs))
	for _, f := range favs {
		rows = append(rows, favoriteRow{
			ID:           f.ID,
			Name:         f.Name,
			ThumbnailURL: f.ThumbnailURL,
			Category:     f.Category,
			Glass:        f.Glass,
			DateAdded:    formatTime(f.DateAdded),
		})
	}
	b, err := json.Marshal(rows)
	return string(b), err
}

func decodeFavorites(raw string) ([]domain.FavoriteRecord, error) {
	var rows []favoriteRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, err
	}
	favs := make([]domain.FavoriteRecord, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		favs = append(favs, domain.FavoriteRecord{
			CocktailSummary: domain.CocktailSummary{
				ID:           r.ID,
				Name:         r.Name,
				Category:     r.Category,
				Glass:        r.Glass,
				ThumbnailURL: r.ThumbnailURL,
			},
			DateAdded: parseTime(r.DateAdded),
		})
	}
	return favs, nil
}

func encodeHistory(entries []domain.SearchHistoryEntry) (string, error) {
	rows := make([]historyRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, historyRow{Term: e.Term, Timestamp: formatTime(e.Timestamp)})
	}
	b, err := json.Marshal(rows)
	return string(b), err
}

func decodeHistory(raw string) ([]domain.SearchHistoryEntry, error) {
	var rows []historyRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, err
	}
	entries := make([]domain.SearchHistoryEntry, 0, len(rows))
	for _, r := range rows {
		if r.Term == "" {
			continue
		}
		entries = append(entries, domain.SearchHistoryEntry{Term: r.Term, Timestamp: parseTime(r.Timestamp)})
	}
	return entries, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC 3339 with or without fractional seconds; anything
// else decodes to the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
