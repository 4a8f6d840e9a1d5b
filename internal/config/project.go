package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Project aggregates everything one render needs: palette, gradient, the
// ordered noise layer stack, lighting, and the preview dimensions.
//
// GlobalSeed is only the default base for per-layer seeds at construction
// time (layer i gets GlobalSeed+i); the renderer consumes the already
// resolved per-layer seeds and never reads GlobalSeed itself.
type Project struct {
	Palette     Palette            `json:"palette"`
	Gradient    GradientConfig     `json:"gradient"`
	NoiseLayers []NoiseLayerConfig `json:"noise_layers"`
	Lighting    LightingConfig     `json:"lighting"`

	PreviewWidth       int `json:"preview_width"`
	PreviewHeight      int `json:"preview_height"`
	NoisePreviewWidth  int `json:"noise_preview_width"`
	NoisePreviewHeight int `json:"noise_preview_height"`

	GlobalSeed int64 `json:"seed_global"`
}

// DefaultProject returns the stock frost dune project: one warp, one base,
// and one detail layer with seeds derived from the global seed.
func DefaultProject() Project {
	const seed = 42
	return Project{
		Palette:            BuiltinPalettes()[0],
		Gradient:           DefaultFrostGradient(),
		NoiseLayers:        DefaultLayers(seed),
		Lighting:           DefaultLighting(),
		PreviewWidth:       960,
		PreviewHeight:      540,
		NoisePreviewWidth:  480,
		NoisePreviewHeight: 270,
		GlobalSeed:         seed,
	}
}

// DefaultLayers builds the stock warp/base/detail stack with per-layer seeds
// derived as globalSeed+index.
func DefaultLayers(globalSeed int64) []NoiseLayerConfig {
	return []NoiseLayerConfig{
		DefaultWarpLayer(globalSeed),
		DefaultBaseLayer(globalSeed + 1),
		DefaultDetailLayer(globalSeed + 2),
	}
}

// Clone returns a deep copy suitable for handing to an in-flight render while
// the caller keeps mutating the original.
func (p Project) Clone() Project {
	out := p
	out.Gradient = p.Gradient.Clone()
	out.NoiseLayers = append([]NoiseLayerConfig(nil), p.NoiseLayers...)
	out.Palette.Colors = append([]string(nil), p.Palette.Colors...)
	return out
}

// Save writes the project as indented JSON.
func (p Project) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// Load reads a project JSON file and restores the gradient stop ordering
// invariant, which hand-edited files may have broken.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to read project: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}

	p.Gradient.sortStops()
	return p, nil
}
