// Package export renders search results and favorites as downloadable
// JSON or CSV documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
)

// Format is a document encoding.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

const (
	resultsPrefix   = "cocktail-search-results-"
	favoritesPrefix = "my-favorite-cocktails-"
	dateLayout      = "2006-01-02"
)

var (
	resultsHeader   = []string{"Name", "Category", "Glass", "Image URL", "ID"}
	favoritesHeader = []string{"Name", "Category", "Glass", "Image URL", "ID", "Date Added"}
)

// ErrNothingToExport is returned when the collection to export is empty.
var ErrNothingToExport = errors.New("nothing to export")

// Document is a rendered export ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", JSON:
		return JSON, nil
	case CSV:
		return CSV, nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("unsupported export format %q", s))
	}
}

type resultRow struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Glass    string `json:"glass"`
	Image    string `json:"image"`
	ID       string `json:"id"`
}

type favoriteRow struct {
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Glass     string    `json:"glass"`
	Image     string    `json:"image"`
	ID        string    `json:"id"`
	DateAdded time.Time `json:"dateAdded"`
}

// Results renders the current search results. at dates the filename.
func Results(items []domain.CocktailSummary, f Format, at time.Time) (Document, error) {
	if len(items) == 0 {
		return Document{}, ErrNothingToExport
	}

	switch f {
	case JSON:
		rows := make([]resultRow, 0, len(items))
		for _, c := range items {
			rows = append(rows, resultRow{c.Name, c.Category, c.Glass, c.ThumbnailURL, c.ID})
		}
		return jsonDocument(resultsPrefix, rows, at)

	case CSV:
		lines := make([][]string, 0, len(items))
		for _, c := range items {
			lines = append(lines, []string{
				quote(c.Name), quote(c.Category), quote(c.Glass), quote(c.ThumbnailURL), c.ID,
			})
		}
		return csvDocument(resultsPrefix, resultsHeader, lines, at), nil
	}
	return Document{}, domain.NewValidationError(fmt.Sprintf("unsupported export format %q", f))
}

// Favorites renders the favorites collection. at dates the filename.
func Favorites(items []domain.FavoriteRecord, f Format, at time.Time) (Document, error) {
	if len(items) == 0 {
		return Document{}, ErrNothingToExport
	}

	switch f {
	case JSON:
		rows := make([]favoriteRow, 0, len(items))
		for _, r := range items {
			rows = append(rows, favoriteRow{r.Name, r.Category, r.Glass, r.ThumbnailURL, r.ID, r.DateAdded.UTC()})
		}
		return jsonDocument(favoritesPrefix, rows, at)

	case CSV:
		lines := make([][]string, 0, len(items))
		for _, r := range items {
			lines = append(lines, []string{
				quote(r.Name), quote(r.Category), quote(r.Glass), quote(r.ThumbnailURL), r.ID,
				quote(r.DateAdded.UTC().Format(dateLayout)),
			})
		}
		return csvDocument(favoritesPrefix, favoritesHeader, lines, at), nil
	}
	return Document{}, domain.NewValidationError(fmt.Sprintf("unsupported export format %q", f))
}

func jsonDocument(prefix string, rows any, at time.Time) (Document, error) {
	body, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("encode export: %w", err)
	}
	return Document{
		Filename:    Filename(prefix, JSON, at),
		ContentType: "application/json",
		Body:        body,
	}, nil
}

// csvDocument joins pre-quoted fields. The id column stays bare, which
// encoding/csv cannot express since it quotes only when needed.
func csvDocument(prefix string, header []string, lines [][]string, at time.Time) Document {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, l := range lines {
		b.WriteByte('\n')
		b.WriteString(strings.Join(l, ","))
	}
	return Document{
		Filename:    Filename(prefix, CSV, at),
		ContentType: "text/csv",
		Body:        []byte(b.String()),
	}
}

// Filename builds "<prefix>YYYY-MM-DD.<ext>" from the UTC date of at.
func Filename(prefix string, f Format, at time.Time) string {
	return prefix + at.UTC().Format(dateLayout) + "." + string(f)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
