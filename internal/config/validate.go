package config

import (
	"errors"
	"fmt"
)

// ValidationError reports a single configuration constraint violation with
// enough detail for the caller to fix the offending field.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Constraint)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}

// Validate checks the project against the renderer's preconditions. The
// renderer never starts computing pixels against a project that fails here.
func (p Project) Validate() error {
	if err := p.Gradient.Validate(); err != nil {
		return err
	}
	for i, layer := range p.NoiseLayers {
		if err := layer.Validate(i); err != nil {
			return err
		}
	}
	return p.Lighting.Validate()
}

// Validate checks stop count, stop ranges, and colors.
func (g GradientConfig) Validate() error {
	if len(g.Stops) < 2 {
		return invalid("gradient.stops", "need at least 2 stops, have %d", len(g.Stops))
	}
	if len(g.Stops) > 6 {
		return invalid("gradient.stops", "at most 6 stops allowed, have %d", len(g.Stops))
	}
	for i, stop := range g.Stops {
		if stop.Position < 0 || stop.Position > 1 {
			return invalid(fmt.Sprintf("gradient.stops[%d].position", i),
				"must be within [0,1], is %g", stop.Position)
		}
		if stop.Opacity < 0 || stop.Opacity > 1 {
			return invalid(fmt.Sprintf("gradient.stops[%d].opacity", i),
				"must be within [0,1], is %g", stop.Opacity)
		}
		if _, err := stop.RGBA(); err != nil {
			return invalid(fmt.Sprintf("gradient.stops[%d].color", i), "%v", err)
		}
	}
	if g.AngleDeg < 0 || g.AngleDeg >= 360 {
		return invalid("gradient.angle_deg", "must be within [0,360), is %g", g.AngleDeg)
	}
	return nil
}

// Validate checks one noise layer. The index is only used for error reporting.
func (l NoiseLayerConfig) Validate(index int) error {
	field := func(name string) string {
		return fmt.Sprintf("noise_layers[%d].%s", index, name)
	}

	if !l.Role.Valid() {
		return invalid(field("layer_type"), "unknown role %q", string(l.Role))
	}
	if l.ScaleX <= 0 {
		return invalid(field("scale_x"), "must be positive, is %g", l.ScaleX)
	}
	if l.ScaleY <= 0 {
		return invalid(field("scale_y"), "must be positive, is %g", l.ScaleY)
	}
	if l.Octaves < 1 || l.Octaves > 8 {
		return invalid(field("octaves"), "must be within [1,8], is %d", l.Octaves)
	}
	if l.Amplitude < 0 {
		return invalid(field("amplitude"), "must be non-negative, is %g", l.Amplitude)
	}
	if l.RidgePower < 1 {
		return invalid(field("ridge_power"), "must be >= 1, is %g", l.RidgePower)
	}
	if l.HeightPower < 1 {
		return invalid(field("height_power"), "must be >= 1, is %g", l.HeightPower)
	}
	return nil
}

// Validate checks the lighting angles and intensity ranges.
func (l LightingConfig) Validate() error {
	if l.AzimuthDeg < 0 || l.AzimuthDeg >= 360 {
		return invalid("lighting.light_azimuth_deg", "must be within [0,360), is %g", l.AzimuthDeg)
	}
	if l.ElevationDeg < 0 || l.ElevationDeg > 90 {
		return invalid("lighting.light_elevation_deg", "must be within [0,90], is %g", l.ElevationDeg)
	}
	if l.Intensity < 0 || l.Intensity > 1 {
		return invalid("lighting.intensity", "must be within [0,1], is %g", l.Intensity)
	}
	return nil
}
