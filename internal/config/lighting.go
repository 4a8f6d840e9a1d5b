package config

// LightingConfig describes the fixed directional light used for shading.
//
// Azimuth 0 means the light comes from +X (screen right), 90 from +Y.
// Elevation 0 places the light in the surface plane, 90 straight overhead.
type LightingConfig struct {
	AzimuthDeg   float64 `json:"light_azimuth_deg"`   // 0..360
	ElevationDeg float64 `json:"light_elevation_deg"` // 0..90
	Intensity    float64 `json:"intensity"`           // 0..1
}

// DefaultLighting returns the stock 45/60 light at 0.8 intensity.
func DefaultLighting() LightingConfig {
	return LightingConfig{
		AzimuthDeg:   45.0,
		ElevationDeg: 60.0,
		Intensity:    0.8,
	}
}
