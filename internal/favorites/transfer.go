package favorites

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
)

// ImportResult reports the outcome of Import.
type ImportResult struct {
	Imported   int `json:"importedCount"`
	Duplicates int `json:"duplicateCount"`
}

// Import merges a JSON array of {id, name, image?, category?, glass?,
// dateAdded?} objects into the favorites. Entries without id or name are
// skipped; ids already stored or seen earlier in data count as duplicates.
// All new records are written in one batch, and nothing is written when no
// entry is new.
func (c *Coordinator) Import(ctx context.Context, data []byte) (ImportResult, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return ImportResult{}, &domain.FormatError{Reason: "not a JSON document", Err: err}
	}
	items, ok := top.([]any)
	if !ok {
		return ImportResult{}, &domain.FormatError{Reason: "expected a JSON array"}
	}

	now := c.now()
	records := make([]domain.FavoriteRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		id, name := field(obj, "id"), field(obj, "name")
		if id == "" || name == "" {
			skipped++
			continue
		}
		records = append(records, domain.FavoriteRecord{
			CocktailSummary: domain.CocktailSummary{
				ID:           id,
				Name:         name,
				Category:     field(obj, "category"),
				Glass:        field(obj, "glass"),
				ThumbnailURL: field(obj, "image"),
			},
			DateAdded: importDate(field(obj, "dateAdded"), now),
		})
	}

	added, dups, err := c.store.MergeFavorites(ctx, records)
	if err != nil {
		return ImportResult{}, err
	}

	c.logger.Info("favorites imported",
		logger.Int("imported", added),
		logger.Int("duplicates", dups),
		logger.Int("skipped", skipped))

	if added > 0 {
		c.changed(ctx, "", true, false)
	}
	return ImportResult{Imported: added, Duplicates: dups}, nil
}

// field reads a string or numeric member as a trimmed string.
func field(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// importDate accepts RFC 3339 timestamps and plain dates; anything else
// defaults to now.
func importDate(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}
