package domain

import "strings"

// MinTermLength is the shortest accepted name or ingredient term.
const MinTermLength = 2

const (
	msgNoCriteria         = "Please enter at least one search criteria"
	msgNameTooShort       = "Cocktail name must be at least 2 characters long"
	msgIngredientTooShort = "Ingredient name must be at least 2 characters long"
)

// Criteria is the user supplied combination of search fields.
type Criteria struct {
	Name       string `json:"name,omitempty" yaml:"name"`
	Category   string `json:"category,omitempty" yaml:"category"`
	Ingredient string `json:"ingredient,omitempty" yaml:"ingredient"`
	Glass      string `json:"glass,omitempty" yaml:"glass"`
}

// Trimmed returns a copy with every field trimmed.
func (c Criteria) Trimmed() Criteria {
	return Criteria{
		Name:       strings.TrimSpace(c.Name),
		Category:   strings.TrimSpace(c.Category),
		Ingredient: strings.TrimSpace(c.Ingredient),
		Glass:      strings.TrimSpace(c.Glass),
	}
}

// IsEmpty reports whether no field has a non-blank value.
func (c Criteria) IsEmpty() bool {
	t := c.Trimmed()
	return t.Name == "" && t.Category == "" && t.Ingredient == "" && t.Glass == ""
}

// Validate checks the criteria and returns a ValidationError listing
// every violated rule, or nil.
func (c Criteria) Validate() error {
	t := c.Trimmed()
	var msgs []string

	if t.IsEmpty() {
		msgs = append(msgs, msgNoCriteria)
	}
	if t.Name != "" && len([]rune(t.Name)) < MinTermLength {
		msgs = append(msgs, msgNameTooShort)
	}
	if t.Ingredient != "" && len([]rune(t.Ingredient)) < MinTermLength {
		msgs = append(msgs, msgIngredientTooShort)
	}

	if len(msgs) == 0 {
		return nil
	}
	return NewValidationError(msgs...)
}

// ValidTerm reports whether a trimmed term is long enough to query.
func ValidTerm(term string) bool {
	return len([]rune(strings.TrimSpace(term))) >= MinTermLength
}
