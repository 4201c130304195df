package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-barry/svgurl/core"
	"github.com/urfave/cli/v2"
)

var CleanCommand = &cli.Command{
	Name:      "clean",
	Usage:     "Remove URL comments from SVG files (default: every file under svgDir)",
	ArgsUsage: "[file...]",
	Flags:     []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		annotator := core.NewAnnotator(cfg, nil, nil)

		paths := c.Args().Slice()
		if len(paths) == 0 {
			err := core.WalkSVGs(cfg.SVGDir, nil, func(path string) {
				paths = append(paths, path)
			})
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Println("🧼 Nothing to clean:", cfg.SVGDir)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read svg directory: %w", err)
			}
		}

		removed, failed := 0, 0
		for _, p := range paths {
			stripped, err := annotator.StripFile(p)
			if err != nil {
				failed++
				fmt.Printf("❌ %s: %v\n", p, err)
				continue
			}
			if stripped {
				removed++
				fmt.Println("🧹 Cleaned:", p)
			}
		}

		if failed > 0 {
			return fmt.Errorf("failed to clean %d file(s)", failed)
		}
		if removed == 0 {
			fmt.Println("🧼 Nothing to clean.")
			return nil
		}

		fmt.Printf("✅ Done. Removed %d comment(s).\n", removed)
		return nil
	},
}
