// Command minbarctl runs minbar-search queries from a terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/minbar-platform/minbar-search/internal/config"
)

func main() {
	app := &cli.Command{
		Name:  "minbarctl",
		Usage: "Query the minbar search index from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Configuration environment (selects config/<env>.yaml)",
				Value: config.GetEnv(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			SearchCommand(),
			BrowseCommand(),
			CollectionCommand(),
			PopularCommand(),
			HealthCommand(),
			VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
