// Package render composes the heightmap, lighting, and gradient stages into
// a single deterministic image-producing pipeline.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/gradient"
	"github.com/MeKo-Tech/frostdune/internal/heightmap"
	"github.com/MeKo-Tech/frostdune/internal/lighting"
)

// Renderer renders projects to images. It holds no mutable state between
// calls: every render works on local buffers only, so one Renderer may serve
// concurrent renders of independent projects.
type Renderer struct {
	logger *slog.Logger
}

// New creates a renderer. logger may be nil.
func New(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Output bundles a finished render with its optional diagnostic layer maps.
type Output struct {
	Image  *image.NRGBA
	Layers *Diagnostics
}

// Render produces a width×height image of the project. The project is
// validated first and no pixel work happens against an invalid one. A
// cancelled ctx surfaces as an error wrapping context.Canceled; partial
// output is never returned.
//
// The same call serves preview and export: resolution is a parameter, not
// part of the project, and the sampled pattern is resolution-stable.
func (r *Renderer) Render(ctx context.Context, p config.Project, width, height int) (*image.NRGBA, error) {
	out, err := r.render(ctx, p, width, height, 0, 0)
	if err != nil {
		return nil, err
	}
	return out.Image, nil
}

// RenderWithDiagnostics additionally returns grayscale base/detail/combined
// layer maps and the shaped heightmap, downsampled to diagW×diagH for
// display. Diagnostic maps are a preview aid, not part of the export
// contract.
func (r *Renderer) RenderWithDiagnostics(ctx context.Context, p config.Project, width, height, diagW, diagH int) (*Output, error) {
	if diagW <= 0 || diagH <= 0 {
		return nil, fmt.Errorf("diagnostic dimensions must be positive, got %dx%d", diagW, diagH)
	}
	return r.render(ctx, p, width, height, diagW, diagH)
}

func (r *Renderer) render(ctx context.Context, p config.Project, width, height, diagW, diagH int) (*Output, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render dimensions must be positive, got %dx%d", width, height)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	wantDiag := diagW > 0 && diagH > 0

	var (
		height2D *heightmap.Field
		maps     *heightmap.Maps
		err      error
	)
	if wantDiag {
		maps, err = heightmap.BuildWithLayerMaps(ctx, p, width, height)
		if err != nil {
			return nil, err
		}
		height2D = maps.Height
	} else {
		height2D, err = heightmap.Build(ctx, p, width, height)
		if err != nil {
			return nil, err
		}
	}

	shade, err := lighting.Shade(ctx, height2D, p.Lighting)
	if err != nil {
		return nil, err
	}

	ramp, err := gradient.NewRamp(p.Gradient)
	if err != nil {
		return nil, err
	}
	axis := gradient.NewAxis(p.Gradient.AngleDeg)

	img, err := compose(ctx, shade, ramp, axis)
	if err != nil {
		return nil, err
	}

	out := &Output{Image: img}
	if wantDiag {
		out.Layers, err = buildDiagnostics(maps, diagW, diagH)
		if err != nil {
			return nil, err
		}
	}

	if r.logger != nil {
		r.logger.Debug("render complete", "width", width, "height", height, "diagnostics", wantDiag)
	}
	return out, nil
}

// compose resolves the gradient color per pixel, scales it by the shade
// brightness, and composites stop opacity over an opaque black background.
func compose(ctx context.Context, shade *heightmap.Field, ramp *gradient.Ramp, axis gradient.Axis) (*image.NRGBA, error) {
	w, h := shade.W, shade.H
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	stepX := 0.0
	if w > 1 {
		stepX = 1.0 / float64(w-1)
	}
	stepY := 0.0
	if h > 1 {
		stepY = 1.0 / float64(h-1)
	}

	for py := 0; py < h; py++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("composition stopped: %w", ctx.Err())
		default:
		}

		y := float64(py) * stepY
		for px := 0; px < w; px++ {
			x := float64(px) * stepX

			c, opacity := ramp.At(axis.At(x, y))
			b := shade.At(px, py)

			// Brightness scaling, then opacity as a blend weight against
			// black; the black contribution is zero so it folds into one
			// multiply per channel.
			f := b * opacity
			img.SetNRGBA(px, py, color.NRGBA{
				R: channel(c.R * f),
				G: channel(c.G * f),
				B: channel(c.B * f),
				A: 255,
			})
		}
	}
	return img, nil
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
