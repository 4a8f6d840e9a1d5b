package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// CompressionLevel resolves the user-facing PNG compression names to the
// encoder's levels. Unknown names fall back to the default level.
func CompressionLevel(name string) png.CompressionLevel {
	switch name {
	case "speed":
		return png.BestSpeed
	case "best":
		return png.BestCompression
	case "none":
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// WritePNG encodes img to path with the named compression level.
func WritePNG(path string, img image.Image, compression string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	enc := png.Encoder{CompressionLevel: CompressionLevel(compression)}
	if err := enc.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
