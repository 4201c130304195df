package cli

import (
	"fmt"
	"os"

	"github.com/go-barry/svgurl/core"
	"github.com/urfave/cli/v2"
)

var AnnotateCommand = &cli.Command{
	Name:      "annotate",
	Usage:     "Prepend a URL comment to each SVG (default: every file under svgDir)",
	ArgsUsage: "[file...]",
	Flags:     []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		logger := core.NewLogger(os.Stdout, cfg.DebugLogs)
		annotator := core.NewAnnotator(cfg, logger, nil)

		var sum core.Summary
		if c.Args().Len() > 0 {
			sum = annotator.AnnotateFiles(c.Args().Slice())
		} else {
			fmt.Println("📁 SVG Directory:", cfg.SVGDir)
			sum, err = annotator.AnnotateTree()
			if err != nil {
				return fmt.Errorf("failed to read svg directory: %w", err)
			}
		}

		fmt.Printf("✅ %d updated, %d unchanged, %d failed\n", sum.Updated, sum.Unchanged, sum.Failed)
		if sum.Failed > 0 {
			return cli.Exit(fmt.Sprintf("%d file(s) could not be annotated", sum.Failed), 1)
		}
		return nil
	},
}
