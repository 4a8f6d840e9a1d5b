package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// GradientStop anchors a color and opacity at a position along the gradient axis.
type GradientStop struct {
	Position float64 `json:"position"` // 0..1
	Color    string  `json:"color"`    // "#rrggbb"
	Opacity  float64 `json:"opacity"`  // 0..1
}

// RGBA parses the stop's hex color. Alpha is always 255; opacity is tracked
// separately so it can be interpolated independently of the color channels.
func (s GradientStop) RGBA() (color.NRGBA, error) {
	return ParseHexColor(s.Color)
}

// ParseHexColor converts "#rrggbb" to an NRGBA with full alpha.
func ParseHexColor(hex string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// FormatHexColor renders c as "#rrggbb", discarding alpha.
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// GradientConfig is an ordered set of stops plus the gradient axis angle.
//
// Stops are kept sorted ascending by Position at all times: every mutation
// re-sorts before returning, and sorting is stable so stops sharing a position
// keep their insertion order (the later one wins at the exact boundary).
type GradientConfig struct {
	Stops    []GradientStop `json:"stops"`
	AngleDeg float64        `json:"angle_deg"` // 0 = left->right, 90 = bottom->top
}

// AddStop inserts a stop and restores the ordering invariant.
func (g *GradientConfig) AddStop(stop GradientStop) {
	g.Stops = append(g.Stops, stop)
	g.sortStops()
}

// UpdateStop replaces the stop at index i and restores the ordering invariant.
func (g *GradientConfig) UpdateStop(i int, stop GradientStop) error {
	if i < 0 || i >= len(g.Stops) {
		return fmt.Errorf("stop index %d out of range [0,%d)", i, len(g.Stops))
	}
	g.Stops[i] = stop
	g.sortStops()
	return nil
}

// RemoveStop deletes the stop at index i.
func (g *GradientConfig) RemoveStop(i int) error {
	if i < 0 || i >= len(g.Stops) {
		return fmt.Errorf("stop index %d out of range [0,%d)", i, len(g.Stops))
	}
	g.Stops = append(g.Stops[:i], g.Stops[i+1:]...)
	return nil
}

func (g *GradientConfig) sortStops() {
	sort.SliceStable(g.Stops, func(a, b int) bool {
		return g.Stops[a].Position < g.Stops[b].Position
	})
}

// Clone returns a deep copy so a render can hold a private snapshot.
func (g GradientConfig) Clone() GradientConfig {
	out := g
	out.Stops = append([]GradientStop(nil), g.Stops...)
	return out
}

// DefaultFrostGradient returns the stock four-stop frost gradient.
func DefaultFrostGradient() GradientConfig {
	return GradientConfig{
		AngleDeg: 20.0,
		Stops: []GradientStop{
			{Position: 0.0, Color: "#000814", Opacity: 1.0},
			{Position: 0.3, Color: "#0a1628", Opacity: 1.0},
			{Position: 0.6, Color: "#1a2e45", Opacity: 1.0},
			{Position: 1.0, Color: "#caf0f8", Opacity: 1.0},
		},
	}
}
