package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-barry/svgurl/core"
	"github.com/urfave/cli/v2"
)

var newRunner = func(configPath string, logger *slog.Logger) (core.Runner, error) {
	runner, err := core.NewProcessRunner(configPath, logger)
	if err != nil {
		return nil, err
	}
	return runner, nil
}

var WatchCommand = &cli.Command{
	Name:  "watch",
	Usage: "Re-annotate SVG files as they change, one annotate process per change",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		logger := core.NewLogger(os.Stdout, cfg.DebugLogs)
		runner, err := newRunner(configPath(c), logger)
		if err != nil {
			return err
		}

		watcher, err := core.NewWatcher(cfg.SVGDir, runner, logger)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.SVGDir, err)
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("👀 Watching SVG directory for changes:", cfg.SVGDir)
		return watcher.Run(ctx)
	},
}
