package noise

import "github.com/MeKo-Tech/frostdune/internal/config"

// warpOffset decorrelates the X and Y displacement fields of a warp layer:
// both share one seed and scale, so the Y field is sampled far enough away
// that the two are statistically independent.
const warpOffset = 1000.0

// Warper displaces sample coordinates using the enabled WARP layers.
// With no enabled warp layers it is the identity.
type Warper struct {
	evals []*Evaluator
}

// NewWarper builds evaluators for every enabled WARP layer in layers,
// preserving their configured order. Non-warp and disabled layers are ignored.
func NewWarper(layers []config.NoiseLayerConfig) *Warper {
	w := &Warper{}
	for _, layer := range layers {
		if layer.Role != config.RoleWarp || !layer.Enabled {
			continue
		}
		w.evals = append(w.evals, NewEvaluator(layer))
	}
	return w
}

// Active reports whether any warp layer will displace coordinates.
func (w *Warper) Active() bool { return len(w.evals) > 0 }

// Warp maps (x, y) through every warp layer in order, each displacing the
// coordinates produced by the previous one.
func (w *Warper) Warp(x, y float64) (float64, float64) {
	for _, e := range w.evals {
		amp := e.Config().Amplitude
		wx := e.At(x, y)
		wy := e.At(x+warpOffset, y+warpOffset)
		x += wx * amp
		y += wy * amp
	}
	return x, y
}
