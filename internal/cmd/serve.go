package cmd

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/MeKo-Tech/frostdune/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve interactive previews over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().Int("max-concurrent-renders", runtime.NumCPU(), "Max concurrent renders (default: number of CPUs)")
	serveCmd.Flags().Duration("render-timeout", 2*time.Minute, "Timeout per render")
	serveCmd.Flags().String("cache-control", "no-store", "Cache-Control header for served images")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.max_concurrent_renders", "max-concurrent-renders")
	mustBind("serve.render_timeout", "render-timeout")
	mustBind("serve.cache_control", "cache-control")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	maxConc := viper.GetInt("serve.max_concurrent_renders")
	renderTimeout := viper.GetDuration("serve.render_timeout")
	cacheControl := viper.GetString("serve.cache_control")

	project, err := loadProject()
	if err != nil {
		return err
	}

	preview, err := server.NewPreview(project, server.Config{
		MaxConcurrentRenders: maxConc,
		RenderTimeout:        renderTimeout,
		CacheControl:         cacheControl,
	}, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", withCORS(preview.Handler()))

	logger.Info("preview server listening",
		"addr", addr,
		"max_concurrent_renders", maxConc,
		"render_timeout", renderTimeout,
	)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
