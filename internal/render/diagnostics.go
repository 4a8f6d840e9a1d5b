package render

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	xdraw "golang.org/x/image/draw"

	"github.com/MeKo-Tech/frostdune/internal/heightmap"
)

// Diagnostics carries grayscale layer maps for preview display: the shaped
// final heightmap and the independently normalized base/detail/combined sums.
type Diagnostics struct {
	Height   *image.Gray
	Base     *image.Gray
	Detail   *image.Gray
	Combined *image.Gray
}

// diagnosticSmoothSigma takes the edge off the nearest-structure aliasing
// that shows up when the full-resolution maps are shrunk far down.
const diagnosticSmoothSigma = 0.5

func buildDiagnostics(maps *heightmap.Maps, w, h int) (*Diagnostics, error) {
	if maps.Base == nil || maps.Detail == nil || maps.Combined == nil {
		return nil, fmt.Errorf("layer maps missing from heightmap build")
	}
	return &Diagnostics{
		Height:   diagnosticGray(maps.Height, w, h),
		Base:     diagnosticGray(maps.Base, w, h),
		Detail:   diagnosticGray(maps.Detail, w, h),
		Combined: diagnosticGray(maps.Combined, w, h),
	}, nil
}

// diagnosticGray converts a field to grayscale, resamples it to w×h with
// Catmull-Rom, and applies a light Gaussian smoothing pass.
func diagnosticGray(f *heightmap.Field, w, h int) *image.Gray {
	src := f.Gray()
	if src.Bounds().Dx() != w || src.Bounds().Dy() != h {
		dst := image.NewGray(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		src = dst
	}

	g := gift.New(gift.GaussianBlur(diagnosticSmoothSigma))
	out := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(out, src)
	return out
}
