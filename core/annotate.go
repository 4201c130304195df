package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	commentPrefix = "<!-- URL: "
	commentSuffix = " -->"
)

type Result int

const (
	ResultUnchanged Result = iota
	ResultUpdated
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultUnchanged:
		return "unchanged"
	case ResultUpdated:
		return "updated"
	default:
		return "failed"
	}
}

// Annotator writes the URL comment that documents how the server exposes
// each SVG under Root.
type Annotator struct {
	Root         string
	BaseURL      string
	RoutePrefix  string
	ReplaceStale bool
	Logger       *slog.Logger
	Metrics      *Metrics
}

func NewAnnotator(cfg Config, logger *slog.Logger, metrics *Metrics) *Annotator {
	return &Annotator{
		Root:         cfg.SVGDir,
		BaseURL:      cfg.BaseURL,
		RoutePrefix:  cfg.RoutePrefix,
		ReplaceStale: cfg.ReplaceStale,
		Logger:       logger,
		Metrics:      metrics,
	}
}

func (a *Annotator) logger() *slog.Logger {
	if a.Logger == nil {
		return discardLogger()
	}
	return a.Logger
}

// URLFor returns the public URL of the file at rel, a slash separated path
// relative to Root.
func (a *Annotator) URLFor(rel string) string {
	base := strings.TrimRight(a.BaseURL, "/")
	prefix := strings.Trim(a.RoutePrefix, "/")
	if prefix != "" {
		base += "/" + prefix
	}
	return base + "/" + strings.TrimPrefix(rel, "/")
}

// QueryTemplate renders "?a={value}&b={value}", or "" without placeholders.
func QueryTemplate(placeholders []string) string {
	if len(placeholders) == 0 {
		return ""
	}
	params := make([]string, len(placeholders))
	for i, p := range placeholders {
		params[i] = p + "={value}"
	}
	return "?" + strings.Join(params, "&")
}

// Comment returns the full annotation line, trailing newline included.
func (a *Annotator) Comment(rel string, placeholders []string) string {
	return commentPrefix + a.URLFor(rel) + QueryTemplate(placeholders) + commentSuffix + "\n"
}

// RelPath converts a file path to its slash separated path under Root.
func (a *Annotator) RelPath(path string) (string, error) {
	absRoot, err := filepath.Abs(a.Root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return filepath.ToSlash(rel), nil
}

// AnnotateFile prepends the annotation comment to the SVG at path unless it
// is already the first line.
func (a *Annotator) AnnotateFile(path string) (Result, error) {
	res, err := a.annotate(path)
	a.Metrics.ObserveAnnotation(res.String())
	if err != nil {
		a.logger().Error("annotate failed", "file", path, "err", err)
	}
	return res, err
}

func (a *Annotator) annotate(path string) (Result, error) {
	log := a.logger()
	log.Debug("processing file", "file", path)

	comment, _, content, err := a.Expected(path)
	if err != nil {
		return ResultFailed, err
	}

	updated, changed := ApplyAnnotation(content, comment, a.ReplaceStale)
	if !changed {
		log.Info("comment already present", "file", path)
		return ResultUnchanged, nil
	}

	if err := atomic.WriteFile(path, strings.NewReader(updated)); err != nil {
		return ResultFailed, fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("updated file", "file", path, "url", strings.TrimSpace(comment))
	return ResultUpdated, nil
}

// ApplyAnnotation returns content with comment as its first line. When
// replaceStale is set an existing annotation line is swapped out rather than
// pushed down.
func ApplyAnnotation(content, comment string, replaceStale bool) (string, bool) {
	if strings.HasPrefix(content, comment) {
		return content, false
	}
	if replaceStale {
		if rest, ok := StripAnnotation(content); ok {
			return comment + rest, true
		}
	}
	return comment + content, true
}

// StripAnnotation removes a leading annotation line.
func StripAnnotation(content string) (string, bool) {
	line, rest, found := strings.Cut(content, "\n")
	if !isAnnotationLine(line) {
		return content, false
	}
	if !found {
		return "", true
	}
	return rest, true
}

// HasAnnotation reports whether content already starts with an annotation
// line, current or not.
func HasAnnotation(content string) bool {
	line, _, _ := strings.Cut(content, "\n")
	return isAnnotationLine(line)
}

func isAnnotationLine(line string) bool {
	line = strings.TrimRight(line, "\r")
	return strings.HasPrefix(line, commentPrefix) && strings.HasSuffix(line, commentSuffix)
}

// StripFile removes the annotation line from the SVG at path.
func (a *Annotator) StripFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	stripped, ok := StripAnnotation(string(data))
	if !ok {
		return false, nil
	}
	if err := atomic.WriteFile(path, strings.NewReader(stripped)); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	a.logger().Info("removed comment", "file", path)
	return true, nil
}

// Expected returns the annotation comment the file at path should carry.
func (a *Annotator) Expected(path string) (comment string, placeholders []string, content string, err error) {
	rel, err := a.RelPath(path)
	if err != nil {
		return "", nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	content = string(data)
	placeholders = ExtractPlaceholders(content)
	return a.Comment(rel, placeholders), placeholders, content, nil
}
