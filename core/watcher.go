package core

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-annotates SVG files under Root as they change. Each qualifying
// event launches Runner in its own goroutine; there is no debouncing and no
// limit on concurrent launches.
type Watcher struct {
	Root    string
	Runner  Runner
	Logger  *slog.Logger
	Metrics *Metrics

	// OnChange, if set, is called after each launched run finishes.
	OnChange func(path string, err error)

	fs       *fsnotify.Watcher
	inflight sync.WaitGroup
}

// NewWatcher subscribes to every directory under root. fsnotify is not
// recursive, so directories created later are added as they appear.
func NewWatcher(root string, runner Runner, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = discardLogger()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{Root: root, Runner: runner, Logger: logger, fs: fw}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.Logger.Error("error reading directory", "dir", path, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.Logger.Debug("watching directory", "dir", path)
		return nil
	})
}

// Run processes events until ctx is done, then waits for launched runs to
// finish. Launched runs are not cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	runCtx := context.WithoutCancel(ctx)

	w.Logger.Info("watching SVG directory for changes", "dir", w.Root)
	for {
		select {
		case <-ctx.Done():
			w.inflight.Wait()
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				w.inflight.Wait()
				return nil
			}
			w.handle(runCtx, ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				w.inflight.Wait()
				return nil
			}
			w.Logger.Error("watch error", "err", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.Logger.Error("failed to watch new directory", "dir", ev.Name, "err", err)
				return
			}
			w.scanNewDir(ctx, ev.Name)
			return
		}
	}

	if !isSVG(ev.Name) {
		return
	}
	w.launch(ctx, ev.Name)
}

// scanNewDir launches runs for files that landed in dir before the watch
// was in place.
func (w *Watcher) scanNewDir(ctx context.Context, dir string) {
	err := WalkSVGs(dir, w.Logger, func(path string) { w.launch(ctx, path) })
	if err != nil {
		w.Logger.Error("failed to scan new directory", "dir", dir, "err", err)
	}
}

func (w *Watcher) launch(ctx context.Context, path string) {
	w.Logger.Info("change detected", "file", path)
	w.Metrics.ObserveWatchEvent()

	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()
		err := w.Runner.Run(ctx, path)
		if err != nil {
			w.Logger.Error("annotation run failed", "file", path, "err", err)
		}
		if w.OnChange != nil {
			w.OnChange(path, err)
		}
	}()
}
