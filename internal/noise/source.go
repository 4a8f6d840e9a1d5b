// Package noise implements the deterministic coherent-noise pipeline: a
// seeded 2D gradient noise primitive, multi-octave ridge/plain fractal
// evaluation, and domain warping.
package noise

import "github.com/aquilax/go-perlin"

// Source is a seeded 2D coherent noise field.
//
// Sampling is pure and bit-exact for a given (x, y, seed): the permutation
// lattice is built once from the seed and only read afterwards, so a Source
// is safe for concurrent use. Distinct seeds shuffle independent lattices and
// produce statistically independent fields.
type Source struct {
	p *perlin.Perlin
}

// NewSource builds a noise field for the given seed.
func NewSource(seed int64) *Source {
	// Single lattice octave; fractal summation with per-layer persistence
	// and lacunarity is the Evaluator's job.
	return &Source{p: perlin.NewPerlin(2.0, 2.0, 1, seed)}
}

// At samples the field at (x, y), returning a value in [-1, 1].
func (s *Source) At(x, y float64) float64 {
	v := s.p.Noise2D(x, y)
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
