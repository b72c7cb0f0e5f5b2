package presets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
)

// Preset is a named, saved search.
type Preset struct {
	Slug        string          `json:"slug"`
	Label       string          `json:"label"`
	Group       string          `json:"group"`
	Description string          `json:"description,omitempty"`
	Criteria    domain.Criteria `json:"criteria"`
}

// Mapper converts a PresetsConfig to presets
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPresets converts the config to presets sorted by group then label.
// Presets whose criteria would be rejected by a search are skipped, as are
// later presets reusing a slug.
func (m *Mapper) MapPresets(config PresetsConfig) ([]Preset, error) {
	var presets []Preset
	seen := make(map[string]bool)

	for _, groupMap := range config {
		for group, list := range groupMap {
			for _, presetMap := range list {
				for label, props := range presetMap {
					criteria := domain.Criteria{
						Name:       props.Name,
						Category:   props.Category,
						Ingredient: props.Ingredient,
						Glass:      props.Glass,
					}.Trimmed()
					if criteria.Validate() != nil {
						continue
					}

					slug := Slugify(label)
					if slug == "" || seen[slug] {
						continue
					}
					seen[slug] = true

					presets = append(presets, Preset{
						Slug:        slug,
						Label:       strings.TrimSpace(label),
						Group:       strings.TrimSpace(group),
						Description: props.Description,
						Criteria:    criteria,
					})
				}
			}
		}
	}

	if len(presets) == 0 {
		return nil, fmt.Errorf("no valid presets found in presets config")
	}

	sort.Slice(presets, func(i, j int) bool {
		if presets[i].Group != presets[j].Group {
			return presets[i].Group < presets[j].Group
		}
		return presets[i].Label < presets[j].Label
	})
	return presets, nil
}

// Slugify lower-cases s and joins its alphanumeric runs with dashes.
// Example: "Rum & Cola!" -> "rum-cola"
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}
