package cli

import (
	"github.com/go-barry/svgurl"
	"github.com/go-barry/svgurl/core"

	"github.com/urfave/cli/v2"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the svgurl config file",
		Value:   core.DefaultConfigPath,
		EnvVars: []string{"SVGURL_CONFIG"},
	}
}

// configPath falls back to the default when SVGURL_CONFIG is set but empty.
func configPath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	return core.DefaultConfigPath
}

func loadConfig(c *cli.Context) (core.Config, error) {
	return core.LoadConfig(configPath(c))
}

var ServeCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve SVG templates with {{placeholder}} substitution",
	Flags: []cli.Flag{
		configFlag(),
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "port to listen on (overrides PORT and the config file)",
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "re-annotate changed files and live-reload the catalog page",
		},
	},
	Action: func(c *cli.Context) error {
		svgurl.Start(svgurl.RuntimeConfig{
			ConfigPath: configPath(c),
			Port:       c.Int("port"),
			Watch:      c.Bool("watch"),
		})
		return nil
	},
}
