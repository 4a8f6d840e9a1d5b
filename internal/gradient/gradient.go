// Package gradient maps a scalar position along a rotated axis to an
// interpolated color and opacity from the configured stops.
package gradient

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/frostdune/internal/config"
)

// Color is a linear-space RGB triple with channels in [0,1].
type Color struct {
	R, G, B float64
}

// Ramp is a gradient with its stops resolved to float colors, ready for
// per-pixel evaluation.
type Ramp struct {
	pos  []float64
	cols []Color
	opac []float64
}

// NewRamp resolves the gradient's stops. Stops must already be sorted
// ascending by position, which config.GradientConfig guarantees.
func NewRamp(cfg config.GradientConfig) (*Ramp, error) {
	if len(cfg.Stops) < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 stops, have %d", len(cfg.Stops))
	}

	r := &Ramp{
		pos:  make([]float64, len(cfg.Stops)),
		cols: make([]Color, len(cfg.Stops)),
		opac: make([]float64, len(cfg.Stops)),
	}
	for i, stop := range cfg.Stops {
		c, err := stop.RGBA()
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		r.pos[i] = stop.Position
		r.cols[i] = Color{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
		}
		r.opac[i] = stop.Opacity
	}
	return r, nil
}

// At evaluates the ramp at t, clamping beyond the endpoint stops. A t that
// lands exactly on a stop position returns that stop's exact values; with
// duplicate positions the later stop wins at the boundary.
func (r *Ramp) At(t float64) (Color, float64) {
	if t <= r.pos[0] {
		return r.cols[0], r.opac[0]
	}
	last := len(r.pos) - 1
	if t >= r.pos[last] {
		return r.cols[last], r.opac[last]
	}

	// Last stop whose position is <= t, so later duplicates take precedence.
	i := 0
	for j := 1; j <= last; j++ {
		if r.pos[j] <= t {
			i = j
		} else {
			break
		}
	}
	if r.pos[i] == t {
		return r.cols[i], r.opac[i]
	}

	f := (t - r.pos[i]) / (r.pos[i+1] - r.pos[i])
	a, b := r.cols[i], r.cols[i+1]
	c := Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
	}
	return c, r.opac[i] + (r.opac[i+1]-r.opac[i])*f
}

// Axis projects normalized pixel coordinates onto the gradient direction and
// rescales the projection's range over the image extent to [0,1].
//
// Angle convention: 0° runs left to right, 90° bottom to top (screen Y grows
// downward, so the Y component of the direction is negated).
type Axis struct {
	dirX, dirY float64
	min, inv   float64
}

// NewAxis builds the projection axis for the given angle in degrees.
func NewAxis(angleDeg float64) Axis {
	rad := angleDeg * math.Pi / 180
	dirX := math.Cos(rad)
	dirY := -math.Sin(rad)

	// The projection is linear over the centered unit square, so its extrema
	// sit at the corners.
	half := (math.Abs(dirX) + math.Abs(dirY)) / 2
	span := 2 * half
	if span <= 1e-8 {
		span = 1
	}
	return Axis{dirX: dirX, dirY: dirY, min: -half, inv: 1 / span}
}

// At returns t in [0,1] for a normalized coordinate pair in [0,1]².
func (a Axis) At(x, y float64) float64 {
	proj := (x-0.5)*a.dirX + (y-0.5)*a.dirY
	return (proj - a.min) * a.inv
}
