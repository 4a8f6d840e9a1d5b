package noise

import (
	"math"

	"github.com/MeKo-Tech/frostdune/internal/config"
)

// Evaluator samples one configured noise layer as a fractal sum.
//
// BASE and DETAIL layers are ridge-shaped: each octave sample n becomes
// (1-|n|)^RidgePower before weighting, which turns smooth hills into sharp
// crests. WARP layers accumulate the raw samples instead.
//
// The octave sum is returned unnormalized (no division by the total
// amplitude); the heightmap compositor's min-max pass is the only
// normalization in the pipeline. The layer's Amplitude is likewise left to
// the caller: the compositor uses it as a blend weight, the warper as a
// displacement magnitude.
type Evaluator struct {
	src   *Source
	cfg   config.NoiseLayerConfig
	ridge bool
}

// NewEvaluator seeds a noise source for the layer. Disabled layers evaluate
// to zero without any noise calls.
func NewEvaluator(cfg config.NoiseLayerConfig) *Evaluator {
	e := &Evaluator{
		cfg:   cfg,
		ridge: cfg.Role != config.RoleWarp,
	}
	if cfg.Enabled {
		e.src = NewSource(cfg.Seed)
	}
	return e
}

// Config returns the layer configuration the evaluator was built from.
func (e *Evaluator) Config() config.NoiseLayerConfig { return e.cfg }

// At evaluates the layer's fractal sum at the given normalized coordinate.
func (e *Evaluator) At(x, y float64) float64 {
	if e.src == nil {
		return 0
	}

	freqX := e.cfg.ScaleX
	freqY := e.cfg.ScaleY
	amp := 1.0
	sum := 0.0

	for i := 0; i < e.cfg.Octaves; i++ {
		n := e.src.At(x*freqX, y*freqY)

		if e.ridge {
			r := 1.0 - math.Abs(n)
			if r < 0 {
				r = 0
			}
			if e.cfg.RidgePower != 1.0 {
				r = math.Pow(r, e.cfg.RidgePower)
			}
			sum += r * amp
		} else {
			sum += n * amp
		}

		amp *= e.cfg.Persistence
		freqX *= e.cfg.Lacunarity
		freqY *= e.cfg.Lacunarity
	}

	return sum
}
