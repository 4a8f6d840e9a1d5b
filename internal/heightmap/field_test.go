package heightmap

import (
	"testing"
)

func TestFieldAtClamped(t *testing.T) {
	f := NewField(3, 2)
	for i := range f.Data {
		f.Data[i] = float64(i)
	}
	// Layout:
	//   0 1 2
	//   3 4 5

	tests := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0},
		{2, 1, 5},
		{-1, 0, 0},  // clamps to (0,0)
		{3, 0, 2},   // clamps to (2,0)
		{1, -5, 1},  // clamps to (1,0)
		{1, 9, 4},   // clamps to (1,1)
		{-2, -2, 0}, // clamps to (0,0)
		{9, 9, 5},   // clamps to (2,1)
	}

	for _, tt := range tests {
		if got := f.AtClamped(tt.x, tt.y); got != tt.want {
			t.Errorf("AtClamped(%d,%d) = %g, want %g", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFieldNormalize(t *testing.T) {
	f := NewField(2, 2)
	f.Data = []float64{-3, 1, 5, 2}

	f.Normalize()

	min, max := f.MinMax()
	if min != 0 || max != 1 {
		t.Errorf("normalized range = [%g,%g], want [0,1]", min, max)
	}
	if f.Data[0] != 0 {
		t.Errorf("minimum should map to 0, got %g", f.Data[0])
	}
	if f.Data[2] != 1 {
		t.Errorf("maximum should map to 1, got %g", f.Data[2])
	}
}

func TestFieldNormalizeConstant(t *testing.T) {
	f := NewField(3, 3)
	for i := range f.Data {
		f.Data[i] = 7.5
	}

	f.Normalize()

	for i, v := range f.Data {
		if v != 0 {
			t.Fatalf("constant field should normalize to 0, Data[%d] = %g", i, v)
		}
	}
}

func TestFieldPow(t *testing.T) {
	f := NewField(2, 1)
	f.Data = []float64{0.5, 1.0}

	f.Pow(2.0)
	if f.Data[0] != 0.25 || f.Data[1] != 1.0 {
		t.Errorf("Pow(2) = %v, want [0.25, 1]", f.Data)
	}

	g := NewField(2, 1)
	g.Data = []float64{0.5, 1.0}
	g.Pow(1.0)
	if g.Data[0] != 0.5 {
		t.Errorf("Pow(1) should be a no-op, got %v", g.Data)
	}
}

func TestFieldGray(t *testing.T) {
	f := NewField(2, 1)
	f.Data = []float64{0, 1.5} // over-range clamps to white

	img := f.Gray()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if img.GrayAt(0, 0).Y != 0 {
		t.Errorf("GrayAt(0,0) = %d, want 0", img.GrayAt(0, 0).Y)
	}
	if img.GrayAt(1, 0).Y != 255 {
		t.Errorf("GrayAt(1,0) = %d, want 255", img.GrayAt(1, 0).Y)
	}
}
