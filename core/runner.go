package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
)

// Runner annotates a single file on behalf of the watcher.
type Runner interface {
	Run(ctx context.Context, path string) error
}

// InProcessRunner annotates in the calling process. OnUpdated, if set, is
// called only when the file was actually rewritten, so the run triggered by
// the annotator's own write does not fire it.
type InProcessRunner struct {
	Annotator *Annotator
	OnUpdated func(path string)
}

func (r InProcessRunner) Run(_ context.Context, path string) error {
	res, err := r.Annotator.AnnotateFile(path)
	if err == nil && res == ResultUpdated && r.OnUpdated != nil {
		r.OnUpdated(path)
	}
	return err
}

var execCommand = exec.CommandContext

// ProcessRunner launches "Command Args... path" and streams its output into
// Logger: stdout lines at info level, stderr lines at error level.
type ProcessRunner struct {
	Command string
	Args    []string
	Env     []string
	Logger  *slog.Logger
}

// NewProcessRunner runs "<this binary> annotate --config configPath <file>".
func NewProcessRunner(configPath string, logger *slog.Logger) (*ProcessRunner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return &ProcessRunner{
		Command: exe,
		Args:    []string{"annotate", "--config", configPath},
		Logger:  logger,
	}, nil
}

func (r *ProcessRunner) Run(ctx context.Context, path string) error {
	log := r.Logger
	if log == nil {
		log = discardLogger()
	}

	args := append(append([]string{}, r.Args...), path)
	cmd := execCommand(ctx, r.Command, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start annotator for %s: %w", path, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go streamLines(&wg, stdout, func(line string) {
		log.Info("annotator output", "file", path, "line", line)
	})
	go streamLines(&wg, stderr, func(line string) {
		log.Error("annotator error", "file", path, "line", line)
	})
	// Pipes must be drained before Wait closes them.
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("annotator for %s: %w", path, err)
	}
	return nil
}

func streamLines(wg *sync.WaitGroup, r io.Reader, emit func(string)) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		emit(scanner.Text())
	}
}
