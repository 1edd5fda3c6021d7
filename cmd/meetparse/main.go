package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/app"
	"github.com/tildaslashalef/meetparse/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

// standalone commands set up their own environment
var standalone = map[string]bool{
	"init": true,
}

func main() {
	cliApp := &cli.App{
		Name:  "meetparse",
		Usage: "Parse and catalog Hy-Tek HY3 swim meet files",
		Description: "meetparse decodes the fixed-column records of HY3 meet files into file, software\n" +
			"and meet information, prints them as text, JSON, TOML or YAML, and keeps a local catalog\n" +
			"of imported meets.",
		Version: fmt.Sprintf("%s (%s)", Version, CommitHash),
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		Before: func(c *cli.Context) error {
			if standalone[c.Args().First()] {
				return nil
			}

			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.ParseCommand(),
			commands.ImportCommand(),
			commands.ListCommand(),
			commands.ShowCommand(),
			commands.DeleteCommand(),
			commands.SettingsCommand(),
			commands.MigrateCommand(),
			commands.InitCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
