package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "presets.yaml")

	yamlContent := `---
- Classics:
    - Margarita:
        name: margarita
        description: Tequila, lime and salt
    - Rum cocktails:
        ingredient: rum
        category: Cocktail
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config) != 1 {
		t.Fatalf("Load() returned %d groups, want 1", len(config))
	}
	classics := config[0]["Classics"]
	if len(classics) != 2 {
		t.Fatalf("Classics has %d presets, want 2", len(classics))
	}
	if got := classics[1]["Rum cocktails"]; got.Ingredient != "rum" || got.Category != "Cocktail" {
		t.Errorf("Rum cocktails = %+v", got)
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(yamlPath, []byte("- Classics: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLoader(yamlPath).Load(); err == nil {
		t.Error("Load() with invalid YAML should return error")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/presets.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}
