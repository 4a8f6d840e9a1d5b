package heightmap

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MeKo-Tech/frostdune/internal/config"
)

func TestBuildOutputBounds(t *testing.T) {
	h, err := Build(context.Background(), config.DefaultProject(), 48, 27)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if h.W != 48 || h.H != 27 {
		t.Fatalf("heightmap is %dx%d, want 48x27", h.W, h.H)
	}

	min, max := h.MinMax()
	if min < 0 || max > 1 {
		t.Errorf("heightmap range [%g,%g] outside [0,1]", min, max)
	}
	// Min-max normalization pins both ends before the contrast exponent.
	if min > 1e-12 {
		t.Errorf("expected minimum ~0, got %g", min)
	}
	if max < 1-1e-9 {
		t.Errorf("expected maximum ~1, got %g", max)
	}
}

func TestBuildDeterminism(t *testing.T) {
	p := config.DefaultProject()

	a, err := Build(context.Background(), p, 32, 18)
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	b, err := Build(context.Background(), p, 32, 18)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}

	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("heightmap not deterministic at index %d: %g != %g", i, a.Data[i], b.Data[i])
		}
	}
}

func TestBuildSeedsChangeField(t *testing.T) {
	pa := config.DefaultProject()
	pb := config.DefaultProject()
	pb.NoiseLayers = config.DefaultLayers(1000)

	a, err := Build(context.Background(), pa, 32, 18)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(context.Background(), pb, 32, 18)
	if err != nil {
		t.Fatal(err)
	}

	var differ int
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			differ++
		}
	}
	if differ < len(a.Data)/2 {
		t.Errorf("different seeds should change most of the field, only %d/%d differ", differ, len(a.Data))
	}
}

func TestBuildResolutionStability(t *testing.T) {
	// The same project sampled at two resolutions must describe the same
	// pattern: values at matching normalized coordinates should correlate
	// strongly even though the pixel grids differ.
	p := config.DefaultProject()

	small, err := Build(context.Background(), p, 48, 27)
	if err != nil {
		t.Fatalf("small build failed: %v", err)
	}
	large, err := Build(context.Background(), p, 96, 54)
	if err != nil {
		t.Fatalf("large build failed: %v", err)
	}

	var xs, ys []float64
	for py := 0; py < small.H; py++ {
		ly := int(math.Round(float64(py) * float64(large.H-1) / float64(small.H-1)))
		for px := 0; px < small.W; px++ {
			lx := int(math.Round(float64(px) * float64(large.W-1) / float64(small.W-1)))
			xs = append(xs, small.At(px, py))
			ys = append(ys, large.At(lx, ly))
		}
	}

	if r := pearson(xs, ys); r < 0.95 {
		t.Errorf("cross-resolution correlation = %g, want >= 0.95", r)
	}
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func TestBuildAllLayersDisabled(t *testing.T) {
	p := config.DefaultProject()
	for i := range p.NoiseLayers {
		p.NoiseLayers[i].Enabled = false
	}

	h, err := Build(context.Background(), p, 16, 9)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// A constant (all-zero) combined field normalizes to uniform zero.
	for i, v := range h.Data {
		if v != 0 {
			t.Fatalf("expected all-zero heightmap, Data[%d] = %g", i, v)
		}
	}
}

func TestBuildInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := Build(context.Background(), config.DefaultProject(), dims[0], dims[1]); err == nil {
			t.Errorf("expected error for %dx%d", dims[0], dims[1])
		}
	}
}

func TestBuildCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, config.DefaultProject(), 64, 64)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled, got: %v", err)
	}
}

func TestBuildWithLayerMaps(t *testing.T) {
	maps, err := BuildWithLayerMaps(context.Background(), config.DefaultProject(), 24, 14)
	if err != nil {
		t.Fatalf("BuildWithLayerMaps failed: %v", err)
	}

	for name, f := range map[string]*Field{
		"height":   maps.Height,
		"base":     maps.Base,
		"detail":   maps.Detail,
		"combined": maps.Combined,
	} {
		if f == nil {
			t.Fatalf("%s map is nil", name)
		}
		if f.W != 24 || f.H != 14 {
			t.Errorf("%s map is %dx%d, want 24x14", name, f.W, f.H)
		}
		min, max := f.MinMax()
		if min < 0 || max > 1 {
			t.Errorf("%s map range [%g,%g] outside [0,1]", name, min, max)
		}
	}
}

func TestBaseHeightPowerFirstEnabledBaseWins(t *testing.T) {
	layers := []config.NoiseLayerConfig{
		config.DefaultWarpLayer(1),
		config.DefaultBaseLayer(2),
		config.DefaultBaseLayer(3),
	}
	layers[1].HeightPower = 2.5
	layers[2].HeightPower = 9.0

	if got := baseHeightPower(layers); got != 2.5 {
		t.Errorf("baseHeightPower = %g, want 2.5 (first enabled base layer)", got)
	}

	layers[1].Enabled = false
	if got := baseHeightPower(layers); got != 9.0 {
		t.Errorf("baseHeightPower = %g, want 9.0 after disabling first base", got)
	}

	layers[2].Enabled = false
	if got := baseHeightPower(layers); got != 1.0 {
		t.Errorf("baseHeightPower = %g, want 1.0 with no enabled base layers", got)
	}
}
