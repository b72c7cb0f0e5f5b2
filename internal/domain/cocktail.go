package domain

import (
	"strings"
	"time"
)

// MaxIngredients is the number of ingredient slots a catalog record carries.
const MaxIngredients = 15

// CocktailSummary is the subset of a catalog record used for lists and favorites.
type CocktailSummary struct {
	// ID is assigned by the catalog service and never changes.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category and Glass are optional classifications (empty when absent).
	Category string `json:"category,omitempty"`
	Glass    string `json:"glass,omitempty"`

	// ThumbnailURL is an optional image reference.
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Ingredient is one (name, measure) pair of a recipe. Measure may be empty.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// CocktailDetail is a full catalog record.
type CocktailDetail struct {
	CocktailSummary
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions,omitempty"`
	Tags         []string     `json:"tags"`
}

// FavoriteRecord is a persisted bookmark of a cocktail.
// DateAdded is set once on insertion and never mutated.
type FavoriteRecord struct {
	CocktailSummary
	DateAdded time.Time `json:"dateAdded"`
}

// SearchHistoryEntry is one remembered search term.
// Term is always trimmed and lower-cased.
type SearchHistoryEntry struct {
	Term      string    `json:"term"`
	Timestamp time.Time `json:"timestamp"`
}

// NewFavorite copies the summary fields of c and stamps it with at.
func NewFavorite(c CocktailSummary, at time.Time) FavoriteRecord {
	return FavoriteRecord{
		CocktailSummary: CocktailSummary{
			ID:           c.ID,
			Name:         c.Name,
			Category:     c.Category,
			Glass:        c.Glass,
			ThumbnailURL: c.ThumbnailURL,
		},
		DateAdded: at,
	}
}

// NormalizeTerm returns the canonical form of a search term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// FormatInstructions collapses line breaks and whitespace runs into single spaces.
func FormatInstructions(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(s string) []string {
	tags := make([]string, 0, 4)
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// BuildIngredients pairs ingredient names with measures slot by slot.
// Slots with a blank name are skipped; at most MaxIngredients are kept.
func BuildIngredients(names, measures []string) []Ingredient {
	out := make([]Ingredient, 0, len(names))
	for i, name := range names {
		if i >= MaxIngredients {
			break
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var measure string
		if i < len(measures) {
			measure = strings.TrimSpace(measures[i])
		}
		out = append(out, Ingredient{Name: name, Measure: measure})
	}
	return out
}

// ContainsFold reports whether substr is within s, ignoring case.
// An empty s never matches.
func ContainsFold(s, substr string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
