package core

import (
	"io/fs"
	"log/slog"
	"path/filepath"
)

type Summary struct {
	Updated   int
	Unchanged int
	Failed    int
}

func (s *Summary) add(r Result) {
	switch r {
	case ResultUpdated:
		s.Updated++
	case ResultUnchanged:
		s.Unchanged++
	default:
		s.Failed++
	}
}

// WalkSVGs calls visit for every .svg file under root. Unreadable
// directories are logged and skipped; only a failure on root itself is
// returned.
func WalkSVGs(root string, logger *slog.Logger, visit func(path string)) error {
	if logger == nil {
		logger = discardLogger()
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Error("error reading directory", "dir", path, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() || !isSVG(d.Name()) {
			logger.Debug("skipping non-SVG file", "file", path)
			return nil
		}

		visit(path)
		return nil
	})
}

// AnnotateTree annotates every SVG under Root. Per-file failures are logged
// and counted but do not stop the walk.
func (a *Annotator) AnnotateTree() (Summary, error) {
	var sum Summary
	err := WalkSVGs(a.Root, a.logger(), func(path string) {
		res, _ := a.AnnotateFile(path)
		sum.add(res)
	})
	return sum, err
}

// AnnotateFiles annotates just the given paths.
func (a *Annotator) AnnotateFiles(paths []string) Summary {
	var sum Summary
	for _, p := range paths {
		res, _ := a.AnnotateFile(p)
		sum.add(res)
	}
	return sum
}
