package presets

// PresetsConfig represents the top-level structure of presets.yaml.
// Groups and presets are keyed by their display label, so we parse as
// []map[string][]map[string]PresetProps
type PresetsConfig []map[string][]map[string]PresetProps

// PresetProps holds the search criteria of one preset
type PresetProps struct {
	Name        string `yaml:"name,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Ingredient  string `yaml:"ingredient,omitempty"`
	Glass       string `yaml:"glass,omitempty"`
	Description string `yaml:"description,omitempty"`
}
