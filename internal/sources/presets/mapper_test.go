package presets

import (
	"testing"
)

func TestMapperMapPresets(t *testing.T) {
	config := PresetsConfig{
		{
			"Tiki": []map[string]PresetProps{
				{"Mai Tai": {Name: " mai tai "}},
			},
		},
		{
			"Classics": []map[string]PresetProps{
				{"Rum Cocktails": {Ingredient: "rum", Category: "Cocktail"}},
				{"Margarita": {Name: "margarita", Description: "Tequila based"}},
				{"Too short": {Name: "m"}},
				{"Empty": {}},
				{"margarita!": {Name: "margarita"}},
			},
		},
	}

	mapper := NewMapper()
	presets, err := mapper.MapPresets(config)
	if err != nil {
		t.Fatalf("MapPresets() error = %v", err)
	}

	want := []string{"margarita", "rum-cocktails", "mai-tai"}
	if len(presets) != len(want) {
		t.Fatalf("MapPresets() returned %d presets, want %d: %+v", len(presets), len(want), presets)
	}
	for i, slug := range want {
		if presets[i].Slug != slug {
			t.Errorf("preset %d slug = %q, want %q", i, presets[i].Slug, slug)
		}
	}

	if presets[2].Criteria.Name != "mai tai" {
		t.Errorf("criteria should be trimmed, got %q", presets[2].Criteria.Name)
	}
	if presets[0].Group != "Classics" || presets[0].Description != "Tequila based" {
		t.Errorf("unexpected preset %+v", presets[0])
	}
}

func TestMapperMapPresetsEmptyConfig(t *testing.T) {
	presets, err := NewMapper().MapPresets(PresetsConfig{})

	// Empty config should return an error
	if err == nil {
		t.Error("MapPresets() with empty config should return error")
	}
	if presets != nil {
		t.Errorf("MapPresets() = %v, want nil", presets)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Margarita", "margarita"},
		{"Rum & Cola!", "rum-cola"},
		{"  Long   Island  ", "long-island"},
		{"7 & 7", "7-7"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Count() != 0 || !r.GetLastReload().IsZero() {
		t.Fatal("new registry should be empty")
	}

	r.Update([]Preset{{Slug: "a", Label: "A"}, {Slug: "b", Label: "B"}})

	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if p, ok := r.Get("b"); !ok || p.Label != "B" {
		t.Errorf("Get(b) = %+v, %v", p, ok)
	}
	if _, ok := r.Get("c"); ok {
		t.Error("Get(c) should fail")
	}
	if r.GetLastReload().IsZero() {
		t.Error("GetLastReload() not set after Update")
	}

	all := r.All()
	all[0].Label = "mutated"
	if p, _ := r.Get("a"); p.Label != "A" {
		t.Error("All() must return a copy")
	}
}
