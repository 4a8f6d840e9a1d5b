package heightmap

import (
	"context"
	"fmt"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/noise"
)

// Maps bundles the final heightmap with the per-category layer maps used by
// diagnostic previews. Base, Detail, and Combined are independently min-max
// normalized; Height additionally carries the base layer's contrast exponent.
type Maps struct {
	Height   *Field
	Base     *Field
	Detail   *Field
	Combined *Field
}

// Build produces the final normalized heightmap for the project at the given
// resolution. It is the fast path used by the renderer; use BuildWithLayerMaps
// when diagnostic per-category maps are needed as well.
//
// Pixels map to normalized coordinates spanning [0,1] on both axes, so the
// same project renders the same pattern at any resolution, only sampled more
// or less densely. ctx is polled once per scanline.
func Build(ctx context.Context, p config.Project, width, height int) (*Field, error) {
	maps, err := build(ctx, p, width, height, false)
	if err != nil {
		return nil, err
	}
	return maps.Height, nil
}

// BuildWithLayerMaps produces the final heightmap plus normalized base,
// detail, and combined category maps for preview purposes.
func BuildWithLayerMaps(ctx context.Context, p config.Project, width, height int) (*Maps, error) {
	return build(ctx, p, width, height, true)
}

func build(ctx context.Context, p config.Project, width, height int, wantLayers bool) (*Maps, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("heightmap dimensions must be positive, got %dx%d", width, height)
	}

	warper := noise.NewWarper(p.NoiseLayers)

	var baseEvals, detailEvals []*noise.Evaluator
	for _, layer := range p.NoiseLayers {
		if !layer.Enabled {
			continue
		}
		switch layer.Role {
		case config.RoleBase:
			baseEvals = append(baseEvals, noise.NewEvaluator(layer))
		case config.RoleDetail:
			detailEvals = append(detailEvals, noise.NewEvaluator(layer))
		}
	}

	combined := NewField(width, height)
	var baseMap, detailMap *Field
	if wantLayers {
		baseMap = NewField(width, height)
		detailMap = NewField(width, height)
	}

	stepX := 0.0
	if width > 1 {
		stepX = 1.0 / float64(width-1)
	}
	stepY := 0.0
	if height > 1 {
		stepY = 1.0 / float64(height-1)
	}

	for py := 0; py < height; py++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("heightmap build stopped: %w", ctx.Err())
		default:
		}

		y := float64(py) * stepY
		for px := 0; px < width; px++ {
			x := float64(px) * stepX

			wx, wy := warper.Warp(x, y)

			var baseSum, detailSum float64
			for _, e := range baseEvals {
				baseSum += e.At(wx, wy) * e.Config().Amplitude
			}
			for _, e := range detailEvals {
				detailSum += e.At(wx, wy) * e.Config().Amplitude
			}

			combined.Set(px, py, baseSum+detailSum)
			if wantLayers {
				baseMap.Set(px, py, baseSum)
				detailMap.Set(px, py, detailSum)
			}
		}
	}

	final := &Field{W: width, H: height, Data: append([]float64(nil), combined.Data...)}
	final.Normalize()
	final.Pow(baseHeightPower(p.NoiseLayers))

	maps := &Maps{Height: final}
	if wantLayers {
		baseMap.Normalize()
		detailMap.Normalize()
		combined.Normalize()
		maps.Base = baseMap
		maps.Detail = detailMap
		maps.Combined = combined
	}
	return maps, nil
}

// baseHeightPower returns the global contrast exponent: the first enabled
// BASE layer's height_power. HeightPower on DETAIL and WARP layers is
// accepted by the config but has no effect here, since layers are summed
// before the single normalization pass.
func baseHeightPower(layers []config.NoiseLayerConfig) float64 {
	for _, layer := range layers {
		if layer.Role == config.RoleBase && layer.Enabled {
			return layer.HeightPower
		}
	}
	return 1.0
}
