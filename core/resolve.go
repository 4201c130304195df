package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const svgExt = ".svg"

// ResolveResource maps a resource path such as "icons/x" or "icons/x.svg" to
// the file under root that serves it.
func ResolveResource(root, resource string) (string, error) {
	resource = strings.TrimSuffix(resource, svgExt)
	if resource == "" {
		return "", ErrNotFound
	}

	rel := filepath.FromSlash(resource + svgExt)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, resource)
	}
	return filepath.Join(root, rel), nil
}

// LoadResource reads the SVG behind resource. Every read failure is reported
// as ErrNotFound, the underlying error stays in the chain.
func LoadResource(root, resource string) (string, error) {
	path, err := ResolveResource(root, resource)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w: %w", path, ErrNotFound, err)
	}
	return string(data), nil
}

func isSVG(name string) bool {
	return filepath.Ext(name) == svgExt
}
