// Package heightmap builds the normalized scalar elevation field from the
// configured noise layer stack.
package heightmap

import (
	"image"
	"image/color"
	"math"
)

// Field is a dense row-major 2D scalar grid.
type Field struct {
	Data []float64
	W    int
	H    int
}

// NewField allocates a zeroed w×h field.
func NewField(w, h int) *Field {
	return &Field{W: w, H: h, Data: make([]float64, w*h)}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 { return f.Data[y*f.W+x] }

// Set writes the value at (x, y).
func (f *Field) Set(x, y int, v float64) { f.Data[y*f.W+x] = v }

// AtClamped returns the value at (x, y) with coordinates clamped to the grid,
// treating the field as edge-padded.
func (f *Field) AtClamped(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= f.W {
		x = f.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.H {
		y = f.H - 1
	}
	return f.Data[y*f.W+x]
}

// MinMax returns the smallest and largest values in the field.
func (f *Field) MinMax() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range f.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Normalize rescales the field linearly so its minimum maps to 0 and its
// maximum to 1. A constant field becomes uniformly 0 instead of dividing by
// zero.
func (f *Field) Normalize() {
	min, max := f.MinMax()
	if max-min <= 1e-8 {
		for i := range f.Data {
			f.Data[i] = 0
		}
		return
	}
	inv := 1.0 / (max - min)
	for i, v := range f.Data {
		f.Data[i] = (v - min) * inv
	}
}

// Pow raises every value to the given exponent. A no-op for power 1.
func (f *Field) Pow(power float64) {
	if power == 1.0 {
		return
	}
	for i, v := range f.Data {
		f.Data[i] = math.Pow(v, power)
	}
}

// Gray converts the field to an 8-bit grayscale image, clamping to [0,1].
func (f *Field) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := f.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(v * 255))})
		}
	}
	return img
}
