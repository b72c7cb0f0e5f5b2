package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
)

// drinksEnvelope mirrors every catalog response: {"drinks": [...] | null}.
// Some endpoints answer a plain string instead of an array when nothing
// matches, so the payload is decoded lazily.
type drinksEnvelope struct {
	Drinks json.RawMessage `json:"drinks"`
}

// rawDrink is one record as sent by the catalog. Every known field is a
// string or null.
type rawDrink map[string]any

func (d rawDrink) str(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func (d rawDrink) summary() domain.CocktailSummary {
	return domain.CocktailSummary{
		ID:           d.str("idDrink"),
		Name:         d.str("strDrink"),
		Category:     d.str("strCategory"),
		Glass:        d.str("strGlass"),
		ThumbnailURL: d.str("strDrinkThumb"),
	}
}

func (d rawDrink) detail() domain.CocktailDetail {
	names := make([]string, domain.MaxIngredients)
	measures := make([]string, domain.MaxIngredients)
	for i := 0; i < domain.MaxIngredients; i++ {
		n := strconv.Itoa(i + 1)
		names[i] = d.str("strIngredient" + n)
		measures[i] = d.str("strMeasure" + n)
	}

	return domain.CocktailDetail{
		CocktailSummary: d.summary(),
		Ingredients:     domain.BuildIngredients(names, measures),
		Instructions:    domain.FormatInstructions(d.str("strInstructions")),
		Tags:            domain.ParseTags(d.str("strTags")),
	}
}

// decodeDrinks extracts the drinks array from a response body.
// A null or non-array drinks field decodes to an empty slice.
func decodeDrinks(body []byte) ([]rawDrink, error) {
	var env drinksEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	raw := bytes.TrimSpace(env.Drinks)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}

	var drinks []rawDrink
	if err := json.Unmarshal(raw, &drinks); err != nil {
		return nil, fmt.Errorf("decoding drinks: %w", err)
	}
	return drinks, nil
}

func summaries(drinks []rawDrink) []domain.CocktailSummary {
	out := make([]domain.CocktailSummary, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, d.summary())
	}
	return out
}
