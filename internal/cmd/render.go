package cmd

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MeKo-Tech/frostdune/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single image",
	Long:  `Render the project to a single PNG at the requested resolution.`,
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntP("width", "W", 0, "Output width in pixels (overrides --preset)")
	renderCmd.Flags().IntP("height", "H", 0, "Output height in pixels (overrides --preset)")
	renderCmd.Flags().String("preset", "preview", "Resolution preset (preview, noise-preview, hd, qhd, 4k)")
	renderCmd.Flags().Int64("seed", 0, "Override the global seed (0 keeps the project's seed)")
	renderCmd.Flags().StringP("out", "o", "", "Output file path (default: <output-dir>/<preset>.png)")
	renderCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	renderCmd.Flags().Bool("layers", false, "Also write grayscale base/detail/combined/height layer maps")
	renderCmd.Flags().Bool("force", false, "Overwrite the output file if it exists")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"render.width", "width"},
		{"render.height", "height"},
		{"render.preset", "preset"},
		{"render.seed", "seed"},
		{"render.out", "out"},
		{"render.png_compression", "png-compression"},
		{"render.layers", "layers"},
		{"render.force", "force"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, renderCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	width := viper.GetInt("render.width")
	height := viper.GetInt("render.height")
	preset := viper.GetString("render.preset")
	seed := viper.GetInt64("render.seed")
	outPath := viper.GetString("render.out")
	pngCompression := viper.GetString("render.png_compression")
	withLayers := viper.GetBool("render.layers")
	force := viper.GetBool("render.force")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	if width == 0 && height == 0 {
		var err error
		width, height, err = resolvePreset(preset)
		if err != nil {
			return err
		}
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("--width and --height must both be positive, got %dx%d", width, height)
	}

	project, err := loadProject()
	if err != nil {
		return err
	}
	project = applySeed(project, seed)

	if outPath == "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
		outPath = filepath.Join(outputDir, fmt.Sprintf("%s.png", preset))
	}
	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("output %s already exists (use --force to overwrite)", outPath)
		}
	}

	logger.Info("Starting render",
		"width", width,
		"height", height,
		"seed", project.GlobalSeed,
		"out", outPath,
		"layers", withLayers,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	renderer := render.New(logger)

	if !withLayers {
		img, err := renderer.Render(ctx, project, width, height)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if err := render.WritePNG(outPath, img, pngCompression); err != nil {
			return err
		}
		logger.Info("Render written", "path", outPath)
		return nil
	}

	diagW := project.NoisePreviewWidth
	diagH := project.NoisePreviewHeight
	out, err := renderer.RenderWithDiagnostics(ctx, project, width, height, diagW, diagH)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if err := render.WritePNG(outPath, out.Image, pngCompression); err != nil {
		return err
	}

	base := outPath[:len(outPath)-len(filepath.Ext(outPath))]
	layers := []struct {
		name string
		img  image.Image
	}{
		{"base", out.Layers.Base},
		{"detail", out.Layers.Detail},
		{"combined", out.Layers.Combined},
		{"height", out.Layers.Height},
	}
	for _, l := range layers {
		path := fmt.Sprintf("%s_%s.png", base, l.name)
		if err := render.WritePNG(path, l.img, pngCompression); err != nil {
			return err
		}
		logger.Debug("Layer map written", "layer", l.name, "path", path)
	}

	logger.Info("Render written", "path", outPath, "layer_maps", len(layers))
	return nil
}
