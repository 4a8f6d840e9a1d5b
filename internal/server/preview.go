// Package server exposes on-demand preview rendering over HTTP: the
// interactive counterpart to the CLI's file-based export.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/render"
)

// maxDimension bounds a single preview request; exports beyond this belong
// in the batch pipeline, not an interactive endpoint.
const maxDimension = 4096

var errUnknownLayer = errors.New("unknown layer")

// Config configures the preview server.
type Config struct {
	// MaxConcurrentRenders bounds parallel render work (default 1).
	MaxConcurrentRenders int
	// RenderTimeout is the per-request render budget (default 2m).
	RenderTimeout time.Duration
	// CacheControl is sent with every rendered image (default "no-store"):
	// the project on disk may change between requests.
	CacheControl string
}

// Preview renders the configured project on demand.
type Preview struct {
	renderer *render.Renderer
	logger   *slog.Logger
	sem      chan struct{}
	project  config.Project
	cfg      Config

	totalRendered atomic.Int64
	totalFailed   atomic.Int64
}

// NewPreview validates the project once up front and prepares the server.
func NewPreview(project config.Project, cfg Config, logger *slog.Logger) (*Preview, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentRenders <= 0 {
		cfg.MaxConcurrentRenders = 1
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 2 * time.Minute
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-store"
	}

	return &Preview{
		renderer: render.New(logger),
		logger:   logger,
		sem:      make(chan struct{}, cfg.MaxConcurrentRenders),
		project:  project.Clone(),
		cfg:      cfg,
	}, nil
}

// Handler returns the preview routes.
func (s *Preview) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/layers/", s.handleLayer)
	mux.HandleFunc("/project", s.handleProject)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

func (s *Preview) handleRender(w http.ResponseWriter, r *http.Request) {
	width, height, err := s.dimensions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := s.withRenderSlot(r.Context(), func(ctx context.Context) (image.Image, error) {
		return s.renderer.Render(ctx, s.project, width, height)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.totalRendered.Add(1)
	s.writePNG(w, img)
}

func (s *Preview) handleLayer(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/layers/")

	width, height, err := s.dimensions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := s.withRenderSlot(r.Context(), func(ctx context.Context) (image.Image, error) {
		out, err := s.renderer.RenderWithDiagnostics(ctx, s.project, width, height, width, height)
		if err != nil {
			return nil, err
		}
		switch name {
		case "height":
			return out.Layers.Height, nil
		case "base":
			return out.Layers.Base, nil
		case "detail":
			return out.Layers.Detail, nil
		case "combined":
			return out.Layers.Combined, nil
		default:
			return nil, fmt.Errorf("%w %q", errUnknownLayer, name)
		}
	})
	if err != nil {
		if errors.Is(err, errUnknownLayer) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.fail(w, r, err)
		return
	}

	s.totalRendered.Add(1)
	s.writePNG(w, img)
}

func (s *Preview) handleProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.project); err != nil {
		s.log().Error("failed to encode project", "error", err)
	}
}

func (s *Preview) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := map[string]any{
		"total_rendered": s.totalRendered.Load(),
		"total_failed":   s.totalFailed.Load(),
		"max_concurrent": s.cfg.MaxConcurrentRenders,
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.log().Error("failed to encode status", "error", err)
	}
}

// withRenderSlot bounds concurrent renders and applies the render timeout.
func (s *Preview) withRenderSlot(ctx context.Context, fn func(context.Context) (image.Image, error)) (image.Image, error) {
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()

	return fn(ctx)
}

func (s *Preview) dimensions(r *http.Request) (int, int, error) {
	width := s.project.PreviewWidth
	height := s.project.PreviewHeight

	if v := r.URL.Query().Get("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid width %q", v)
		}
		width = n
	}
	if v := r.URL.Query().Get("h"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid height %q", v)
		}
		height = n
	}

	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return 0, 0, fmt.Errorf("dimensions must be within 1..%d, got %dx%d", maxDimension, width, height)
	}
	return width, height, nil
}

func (s *Preview) writePNG(w http.ResponseWriter, img image.Image) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.log().Error("failed to encode preview", "error", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", s.cfg.CacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log().Debug("client went away during write", "error", err)
	}
}

func (s *Preview) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.totalFailed.Add(1)

	switch {
	case config.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled):
		// Client cancelled; nothing sensible to write.
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "render timed out", http.StatusServiceUnavailable)
	default:
		s.log().Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Preview) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
