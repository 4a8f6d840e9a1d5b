package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Palette is a named set of hex colors the gradient editor draws from.
type Palette struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// BuiltinPalettes returns the palettes shipped with the tool.
func BuiltinPalettes() []Palette {
	return []Palette{
		{
			Name: "frost",
			Colors: []string{
				"#000814", "#0a1628", "#1a2e45",
				"#caf0f8", "#64ffda", "#4ecdc4",
			},
		},
		{
			Name: "ember",
			Colors: []string{
				"#160402", "#3d0e05", "#7a2a0c",
				"#c4501a", "#f08c2e", "#ffd9a0",
			},
		},
		{
			Name: "dusk",
			Colors: []string{
				"#0d0221", "#261447", "#52307c",
				"#b084cc", "#ffb997", "#f67e7d",
			},
		},
	}
}

// SavePalettes writes palettes as a JSON array.
func SavePalettes(palettes []Palette, path string) error {
	data, err := json.MarshalIndent(palettes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode palettes: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write palettes: %w", err)
	}
	return nil
}

// LoadPalettes reads a JSON array of palettes. A single palette object is
// accepted as well, for files written by older tooling.
func LoadPalettes(path string) ([]Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palettes: %w", err)
	}

	var list []Palette
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single Palette
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse palettes %s: %w", path, err)
	}
	return []Palette{single}, nil
}
