package cli

import (
	"fmt"

	"github.com/go-barry/svgurl/core"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Verify every SVG starts with its current URL comment",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		entries, err := core.BuildCatalog(core.NewAnnotator(cfg, nil, nil))
		if err != nil {
			return fmt.Errorf("failed to read svg directory: %w", err)
		}

		stale := 0
		for _, e := range entries {
			if e.Annotated {
				fmt.Printf("✅ %s\n", e.Path)
				continue
			}
			stale++
			fmt.Printf("❌ %s → missing or outdated URL comment\n", e.Path)
		}

		if stale > 0 {
			return cli.Exit(fmt.Sprintf("%d file(s) need annotating, run: svgurl annotate", stale), 1)
		}

		fmt.Println("✅ All SVG files are annotated.")
		return nil
	},
}
