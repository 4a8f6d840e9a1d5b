package config

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefaultProjectValidates(t *testing.T) {
	if err := DefaultProject().Validate(); err != nil {
		t.Fatalf("default project should validate, got: %v", err)
	}
}

func TestProjectValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Project)
	}{
		{"too few gradient stops", func(p *Project) {
			p.Gradient.Stops = p.Gradient.Stops[:1]
		}},
		{"too many gradient stops", func(p *Project) {
			for i := 0; i < 5; i++ {
				p.Gradient.AddStop(GradientStop{Position: 0.5, Color: "#808080", Opacity: 1.0})
			}
		}},
		{"stop position out of range", func(p *Project) {
			p.Gradient.Stops[0].Position = 1.5
		}},
		{"stop opacity out of range", func(p *Project) {
			p.Gradient.Stops[0].Opacity = -0.1
		}},
		{"bad stop color", func(p *Project) {
			p.Gradient.Stops[0].Color = "#zzz"
		}},
		{"gradient angle out of range", func(p *Project) {
			p.Gradient.AngleDeg = 360.0
		}},
		{"unknown layer role", func(p *Project) {
			p.NoiseLayers[0].Role = "ridge"
		}},
		{"non-positive scale", func(p *Project) {
			p.NoiseLayers[1].ScaleX = 0
		}},
		{"octaves too high", func(p *Project) {
			p.NoiseLayers[1].Octaves = 9
		}},
		{"negative amplitude", func(p *Project) {
			p.NoiseLayers[2].Amplitude = -1
		}},
		{"ridge power below one", func(p *Project) {
			p.NoiseLayers[1].RidgePower = 0.5
		}},
		{"height power below one", func(p *Project) {
			p.NoiseLayers[1].HeightPower = 0.9
		}},
		{"azimuth out of range", func(p *Project) {
			p.Lighting.AzimuthDeg = -10
		}},
		{"elevation out of range", func(p *Project) {
			p.Lighting.ElevationDeg = 91
		}},
		{"intensity out of range", func(p *Project) {
			p.Lighting.Intensity = 1.5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProject()
			tt.mutate(&p)

			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestIsValidationErrorUnwraps(t *testing.T) {
	base := &ValidationError{Field: "gradient.stops", Constraint: "need at least 2 stops"}
	wrapped := fmt.Errorf("render failed: %w", base)

	if !IsValidationError(wrapped) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("IsValidationError matched an unrelated error")
	}
}
