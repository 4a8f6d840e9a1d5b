// Package config holds the declarative project model: noise layers, the
// color gradient, lighting, palettes, and JSON persistence for all of them.
package config

// LayerRole determines how a noise layer participates in composition.
type LayerRole string

const (
	// RoleBase layers form the primary dune relief.
	RoleBase LayerRole = "base"
	// RoleDetail layers add higher-frequency relief on top of the base.
	RoleDetail LayerRole = "detail"
	// RoleWarp layers displace sample coordinates instead of adding height.
	RoleWarp LayerRole = "warp"
)

// Valid reports whether r is one of the known roles.
func (r LayerRole) Valid() bool {
	switch r {
	case RoleBase, RoleDetail, RoleWarp:
		return true
	}
	return false
}

// NoiseLayerConfig describes one fractal noise layer.
//
// ScaleX/ScaleY act as per-axis frequency multipliers on normalized [0,1]
// coordinates. RidgePower shapes each octave of BASE/DETAIL layers via
// (1-|n|)^RidgePower; HeightPower is the post-normalization contrast exponent
// (only the base layer's value is consulted, see heightmap.Build). Amplitude
// is the blend weight for BASE/DETAIL and the displacement magnitude for WARP.
type NoiseLayerConfig struct {
	Role        LayerRole `json:"layer_type"`
	Enabled     bool      `json:"enabled"`
	Seed        int64     `json:"seed"`
	ScaleX      float64   `json:"scale_x"`
	ScaleY      float64   `json:"scale_y"`
	Octaves     int       `json:"octaves"`
	Persistence float64   `json:"persistence"`
	Lacunarity  float64   `json:"lacunarity"`
	RidgePower  float64   `json:"ridge_power"`
	HeightPower float64   `json:"height_power"`
	Amplitude   float64   `json:"amplitude"`
}

// DefaultWarpLayer returns the stock low-frequency domain warp layer.
func DefaultWarpLayer(seed int64) NoiseLayerConfig {
	return NoiseLayerConfig{
		Role:        RoleWarp,
		Enabled:     true,
		Seed:        seed,
		ScaleX:      0.2,
		ScaleY:      0.05,
		Octaves:     2,
		Persistence: 0.5,
		Lacunarity:  2.0,
		RidgePower:  1.0,
		HeightPower: 1.0,
		Amplitude:   0.5,
	}
}

// DefaultBaseLayer returns the stock ridge-shaped base relief layer.
func DefaultBaseLayer(seed int64) NoiseLayerConfig {
	return NoiseLayerConfig{
		Role:        RoleBase,
		Enabled:     true,
		Seed:        seed,
		ScaleX:      1.5,
		ScaleY:      0.3,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2.0,
		RidgePower:  2.0,
		HeightPower: 1.7,
		Amplitude:   1.0,
	}
}

// DefaultDetailLayer returns the stock high-frequency detail layer.
func DefaultDetailLayer(seed int64) NoiseLayerConfig {
	return NoiseLayerConfig{
		Role:        RoleDetail,
		Enabled:     true,
		Seed:        seed,
		ScaleX:      6.0,
		ScaleY:      2.0,
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2.0,
		RidgePower:  2.0,
		HeightPower: 1.3,
		Amplitude:   0.4,
	}
}
