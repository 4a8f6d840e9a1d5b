package render

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	path := filepath.Join(t.TempDir(), "out.png")

	if err := WritePNG(path, img, "speed"); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Errorf("decoded bounds %v, want 4x3", decoded.Bounds())
	}
}

func TestWritePNGBadPath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img, "default"); err == nil {
		t.Error("expected error for unwritable path")
	}
}
