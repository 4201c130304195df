package main

import (
	"log"
	"os"

	svgcli "github.com/go-barry/svgurl/cli"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "svgurl",
		Usage: "Serve SVG templates over HTTP and keep their URL comments current",
		Commands: []*clilib.Command{
			svgcli.InitCommand,
			svgcli.ServeCommand,
			svgcli.AnnotateCommand,
			svgcli.WatchCommand,
			svgcli.CheckCommand,
			svgcli.CleanCommand,
			svgcli.InfoCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
