// Package lighting estimates surface normals from a heightmap and shades it
// with a fixed directional light.
package lighting

import (
	"context"
	"fmt"
	"math"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/heightmap"
)

// normalEpsilon keeps the normal length strictly positive on flat regions.
const normalEpsilon = 1e-8

// Normal is a unit surface normal.
type Normal struct {
	X, Y, Z float64
}

// NormalAt estimates the surface normal at (x, y) from edge-clamped central
// differences. Border pixels see the heightmap as edge-padded, so every pixel
// has a valid neighbor pair.
func NormalAt(h *heightmap.Field, x, y int) Normal {
	dx := h.AtClamped(x+1, y) - h.AtClamped(x-1, y)
	dy := h.AtClamped(x, y+1) - h.AtClamped(x, y-1)

	nx := -dx
	ny := -dy
	nz := 1.0

	inv := 1.0 / (math.Sqrt(nx*nx+ny*ny+nz*nz) + normalEpsilon)
	return Normal{X: nx * inv, Y: ny * inv, Z: nz * inv}
}

// LightVector builds the unit light direction from azimuth and elevation.
// Azimuth 0 points along +X, 90 along +Y; elevation 90 is straight overhead.
func LightVector(cfg config.LightingConfig) (lx, ly, lz float64) {
	az := cfg.AzimuthDeg * math.Pi / 180
	el := cfg.ElevationDeg * math.Pi / 180

	lx = math.Cos(el) * math.Cos(az)
	ly = math.Cos(el) * math.Sin(az)
	lz = math.Sin(el)
	return lx, ly, lz
}

// Shade computes the per-pixel brightness factor for the heightmap:
//
//	brightness = 0.4 + 0.6 * clamp(dot(normal, light), 0, 1) * intensity
//
// The 0.4 floor keeps unlit regions from going fully black so the gradient
// color stays visible everywhere. ctx is polled once per scanline.
func Shade(ctx context.Context, h *heightmap.Field, cfg config.LightingConfig) (*heightmap.Field, error) {
	lx, ly, lz := LightVector(cfg)

	out := heightmap.NewField(h.W, h.H)
	for y := 0; y < h.H; y++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("shading stopped: %w", ctx.Err())
		default:
		}

		for x := 0; x < h.W; x++ {
			n := NormalAt(h, x, y)

			dot := n.X*lx + n.Y*ly + n.Z*lz
			if dot < 0 {
				dot = 0
			} else if dot > 1 {
				dot = 1
			}

			out.Set(x, y, 0.4+0.6*dot*cfg.Intensity)
		}
	}
	return out, nil
}
