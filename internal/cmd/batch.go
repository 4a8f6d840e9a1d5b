package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/gallery"
	"github.com/MeKo-Tech/frostdune/internal/render"
	"github.com/MeKo-Tech/frostdune/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render a batch of images",
	Long: `Render the project across multiple resolution presets and seeds in
parallel, writing either a folder of PNGs or a single gallery database.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("presets", "preview", "Comma-separated resolution presets to render")
	batchCmd.Flags().String("seeds", "", "Seed sweep: either a comma-separated list (\"42,43,44\") or start:count (\"42:10\")")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", true, "Show progress bar")
	batchCmd.Flags().Bool("allow-failures", false, "Continue even if some renders fail")
	batchCmd.Flags().Bool("force", false, "Overwrite existing output files")
	batchCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	batchCmd.Flags().String("format", "folder", "Output format: folder or gallery")
	batchCmd.Flags().String("output-file", "", "Output file path for gallery format (e.g., renders.gallery)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.presets", "presets"},
		{"batch.seeds", "seeds"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.allow_failures", "allow-failures"},
		{"batch.force", "force"},
		{"batch.png_compression", "png-compression"},
		{"batch.format", "format"},
		{"batch.output_file", "output-file"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	presetList := viper.GetString("batch.presets")
	seedSpec := viper.GetString("batch.seeds")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	allowFailures := viper.GetBool("batch.allow_failures")
	force := viper.GetBool("batch.force")
	pngCompression := viper.GetString("batch.png_compression")
	format := viper.GetString("batch.format")
	outputFile := viper.GetString("batch.output_file")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	if format != "folder" && format != "gallery" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'gallery'", format)
	}
	if format == "gallery" && outputFile == "" {
		return fmt.Errorf("--output-file is required when using --format=gallery")
	}

	project, err := loadProject()
	if err != nil {
		return err
	}

	seeds, err := parseSeeds(seedSpec, project.GlobalSeed)
	if err != nil {
		return fmt.Errorf("invalid seeds: %w", err)
	}

	jobs, err := buildJobs(presetList, seeds, force)
	if err != nil {
		return err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Info("Starting batch render",
		"jobs", len(jobs),
		"presets", presetList,
		"seeds", len(seeds),
		"workers", workers,
		"format", format,
	)

	var galleryWriter *gallery.Writer
	if format == "gallery" {
		snapshot, err := json.Marshal(project)
		if err != nil {
			return fmt.Errorf("failed to snapshot project: %w", err)
		}

		galleryWriter, err = gallery.NewWriter(outputFile, gallery.Metadata{
			Name:        "frostdune batch",
			Description: "Procedural frost dune renders",
			Project:     string(snapshot),
			Version:     "1.0",
		})
		if err != nil {
			return fmt.Errorf("failed to create gallery writer: %w", err)
		}
		defer galleryWriter.Close()
	} else {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	runner := &batchRunner{
		project:     project,
		renderer:    render.New(logger),
		outputDir:   outputDir,
		compression: pngCompression,
		gallery:     galleryWriter,
	}

	progress := worker.NewProgress(len(jobs), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		Runner:     runner,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, jobs)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Render failed", "label", r.Job.Label, "seed", r.Job.Seed, "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if galleryWriter != nil {
		if err := galleryWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush gallery: %w", err)
		}
		logger.Info("Gallery written", "path", outputFile)
	}

	if failedCount > 0 {
		if allowFailures {
			logger.Warn("Some renders failed, but continuing due to --allow-failures flag", "failed_count", failedCount)
			return nil
		}
		return fmt.Errorf("%d renders failed", failedCount)
	}

	return nil
}

// buildJobs expands the presets × seeds cross product into worker jobs.
func buildJobs(presetList string, seeds []int64, force bool) ([]worker.Job, error) {
	var jobs []worker.Job
	for _, name := range strings.Split(presetList, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		w, h, err := resolvePreset(name)
		if err != nil {
			return nil, err
		}
		for _, seed := range seeds {
			jobs = append(jobs, worker.Job{
				Label:  fmt.Sprintf("%s_seed%d", name, seed),
				Width:  w,
				Height: h,
				Seed:   seed,
				Force:  force,
			})
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs: --presets resolved to an empty list")
	}
	return jobs, nil
}

// parseSeeds parses either "a,b,c" or "start:count". An empty spec renders
// the project's own seed once.
func parseSeeds(spec string, projectSeed int64) ([]int64, error) {
	if spec == "" {
		return []int64{projectSeed}, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)
		start, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid start %q: %w", parts[0], err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", parts[1], err)
		}
		if count <= 0 {
			return nil, fmt.Errorf("count must be positive, got %d", count)
		}

		seeds := make([]int64, count)
		for i := range seeds {
			seeds[i] = start + int64(i)
		}
		return seeds, nil
	}

	var seeds []int64
	for _, part := range strings.Split(spec, ",") {
		seed, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", part, err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// batchRunner renders one job and writes it to the configured destination.
type batchRunner struct {
	project     config.Project
	renderer    *render.Renderer
	outputDir   string
	compression string
	gallery     *gallery.Writer
}

func (b *batchRunner) Run(ctx context.Context, job worker.Job) (string, error) {
	if b.gallery == nil && !job.Force {
		path := filepath.Join(b.outputDir, job.Label+".png")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	project := applySeed(b.project, job.Seed)

	img, err := b.renderer.Render(ctx, project, job.Width, job.Height)
	if err != nil {
		return "", err
	}

	if b.gallery != nil {
		var buf bytes.Buffer
		enc := png.Encoder{CompressionLevel: render.CompressionLevel(b.compression)}
		if err := enc.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", job.Label, err)
		}

		entry := gallery.Entry{
			Label:  job.Label,
			Width:  job.Width,
			Height: job.Height,
			Seed:   job.Seed,
		}
		if err := b.gallery.WriteRender(entry, buf.Bytes()); err != nil {
			return "", err
		}
		return entry.Key(), nil
	}

	path := filepath.Join(b.outputDir, job.Label+".png")
	if err := render.WritePNG(path, img, b.compression); err != nil {
		return "", err
	}
	return path, nil
}
