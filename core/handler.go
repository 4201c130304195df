package core

import (
	"bytes"
	"compress/gzip"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	minsvg "github.com/tdewolff/minify/v2/svg"
)

const svgMediaType = "image/svg+xml"

// SVGHandler serves Prefix/<resource>[.svg] from Root with the query
// parameters substituted into the file's placeholders.
type SVGHandler struct {
	Root         string
	Prefix       string
	CacheControl string
	Logger       *slog.Logger
	Metrics      *Metrics

	minifier *minify.M
}

func NewSVGHandler(cfg Config, logger *slog.Logger, metrics *Metrics) *SVGHandler {
	h := &SVGHandler{
		Root:         cfg.SVGDir,
		Prefix:       cfg.RoutePrefix,
		CacheControl: cfg.CacheControl,
		Logger:       logger,
		Metrics:      metrics,
	}
	if cfg.Minify {
		h.minifier = minify.New()
		h.minifier.AddFunc(svgMediaType, minsvg.Minify)
	}
	return h
}

func (h *SVGHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return discardLogger()
	}
	return h.Logger
}

func (h *SVGHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resource := strings.TrimPrefix(r.URL.Path, strings.TrimRight(h.Prefix, "/")+"/")
	log := h.logger().With("resource", resource)
	log.Debug("requested SVG")

	text, err := LoadResource(h.Root, resource)
	if err != nil {
		if errors.Is(err, ErrInvalidPath) {
			log.Warn("rejected resource path", "err", err)
			h.fail(w, "invalid SVG path", http.StatusBadRequest)
			return
		}
		log.Error("error reading SVG file", "err", err)
		h.fail(w, "SVG file not found", http.StatusNotFound)
		return
	}

	body := []byte(Substitute(text, ValuesFromQuery(r.URL.Query())))
	if h.minifier != nil {
		var buf bytes.Buffer
		if err := h.minifier.Minify(svgMediaType, &buf, bytes.NewReader(body)); err != nil {
			log.Warn("minify failed, serving original", "err", err)
		} else {
			body = buf.Bytes()
		}
	}

	w.Header().Set("Cache-Control", h.CacheControl)
	w.Header().Set("Content-Type", svgMediaType)
	h.Metrics.ObserveRequest(http.StatusOK)

	if acceptsGzip(r) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Vary", "Accept-Encoding")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		gz.Write(body)
		return
	}
	w.Write(body)
}

func (h *SVGHandler) fail(w http.ResponseWriter, msg string, status int) {
	h.Metrics.ObserveRequest(status)
	http.Error(w, msg, status)
}

// acceptsGzip reports whether Accept-Encoding lists gzip, or "*" when gzip
// itself is not named, with a non-zero quality.
func acceptsGzip(r *http.Request) bool {
	wildcard := false
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(part, ";")
		switch strings.ToLower(strings.TrimSpace(coding)) {
		case "gzip", "x-gzip":
			return quality(params) > 0
		case "*":
			wildcard = quality(params) > 0
		}
	}
	return wildcard
}

func quality(params string) float64 {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}
