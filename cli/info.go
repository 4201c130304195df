package cli

import (
	"fmt"

	"github.com/go-barry/svgurl/core"
	"github.com/urfave/cli/v2"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print configuration and an SVG directory summary",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		fmt.Println("📁 SVG Directory:", cfg.SVGDir)
		fmt.Println("🌐 Base URL:", cfg.BaseURL+cfg.RoutePrefix)
		fmt.Println("🔌 Port:", cfg.Port)
		fmt.Println("🗜️  Minify:", cfg.Minify)
		fmt.Println()

		entries, err := core.BuildCatalog(core.NewAnnotator(cfg, nil, nil))
		if err != nil {
			fmt.Println("⚠️  SVG directory unreadable:", err)
			return nil
		}

		placeholders := map[string]bool{}
		annotated := 0
		for _, e := range entries {
			for _, p := range e.Placeholders {
				placeholders[p] = true
			}
			if e.Annotated {
				annotated++
			}
		}

		fmt.Println("🖼️  SVG Files:", len(entries))
		fmt.Println("🧩 Distinct Placeholders:", len(placeholders))
		fmt.Println("📝 Annotated:", annotated)
		return nil
	},
}
