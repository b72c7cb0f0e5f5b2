package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of presets.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new presets loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the presets file
func (l *Loader) Load() (PresetsConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var config PresetsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse presets yaml: %w", err)
	}

	return config, nil
}
