package svgurl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-barry/svgurl/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RuntimeConfig struct {
	ConfigPath string
	// Port overrides the configured port when positive.
	Port  int
	Watch bool
}

type Server struct {
	Addr    string
	Handler http.Handler
	Config  core.Config
	Logger  *slog.Logger
	// Watcher is nil unless RuntimeConfig.Watch was set.
	Watcher *core.Watcher
}

var ListenAndServe = func(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

var Exit = os.Exit

func BuildServer(cfg RuntimeConfig) (*Server, error) {
	config, err := core.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Port > 0 {
		config.Port = cfg.Port
	}

	logger := core.NewLogger(os.Stderr, config.DebugLogs)
	registry := prometheus.NewRegistry()
	metrics := core.NewMetrics(registry)
	annotator := core.NewAnnotator(config, logger, metrics)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(corsMiddleware(config.CORSOrigins))
	r.Use(middleware.GetHead)

	r.Get(config.RoutePrefix+"/*", core.NewSVGHandler(config, logger, metrics).ServeHTTP)
	r.Get("/catalog.json", func(w http.ResponseWriter, req *http.Request) {
		entries, err := core.BuildCatalog(annotator)
		if err != nil {
			logger.Error("catalog failed", "err", err)
			http.Error(w, "catalog unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		core.WriteCatalogJSON(w, entries)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &Server{
		Addr:   fmt.Sprintf(":%d", config.Port),
		Config: config,
		Logger: logger,
	}

	liveReload := ""
	if cfg.Watch {
		reloader := core.NewLiveReloader()
		r.Get(core.LiveReloadPath, reloader.Handler)
		liveReload = core.LiveReloadPath

		runner := core.InProcessRunner{
			Annotator: annotator,
			OnUpdated: func(path string) {
				if rel, err := annotator.RelPath(path); err == nil {
					reloader.Broadcast(rel)
				}
			},
		}
		watcher, err := core.NewWatcher(config.SVGDir, runner, logger)
		if err != nil {
			return nil, err
		}
		watcher.Metrics = metrics
		srv.Watcher = watcher
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		entries, err := core.BuildCatalog(annotator)
		if err != nil {
			logger.Error("catalog failed", "err", err)
			http.Error(w, "catalog unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := core.WriteCatalogHTML(w, entries, liveReload); err != nil {
			logger.Error("render catalog", "err", err)
		}
	})

	srv.Handler = r
	return srv, nil
}

var Start = func(cfg RuntimeConfig) {
	srv, err := BuildServer(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Failed to start:", err)
		Exit(1)
		return
	}

	if srv.Watcher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := srv.Watcher.Run(ctx); err != nil {
				srv.Logger.Error("watcher stopped", "err", err)
			}
		}()
	}

	fmt.Printf("✅ svgurl running at http://localhost%s (serving %s)\n", srv.Addr, srv.Config.SVGDir)
	if err := ListenAndServe(srv.Addr, srv.Handler); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Server failed:", err)
		Exit(1)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info("request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         600,
	})
}
