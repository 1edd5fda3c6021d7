package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/app"
	"github.com/tildaslashalef/meetparse/internal/config"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

// SettingsCommand returns the CLI command for persisted settings
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "View or change persisted settings",
		Description: "Persisted settings override values from the environment and the .env file.\n" +
			"Keys: " + fmt.Sprint(config.KnownKeys()),
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the effective value of every setting",
				Action: func(c *cli.Context) error {
					application, err := app.FromContext(c)
					if err != nil {
						return err
					}

					values := application.Settings.All()
					rows := make([][]string, 0, len(values))
					for _, key := range config.KnownKeys() {
						rows = append(rows, []string{key, values[key]})
					}
					utils.PrintTable([]string{"Key", "Value"}, rows)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "Print one setting",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					application, err := app.FromContext(c)
					if err != nil {
						return err
					}

					value, err := application.Settings.Get(c.Args().First())
					if err != nil {
						utils.PrintError(err.Error())
						return err
					}
					fmt.Fprintln(c.App.Writer, value)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Persist a setting",
				ArgsUsage: "<key> <value>",
				Action: func(c *cli.Context) error {
					application, err := app.FromContext(c)
					if err != nil {
						return err
					}

					if c.NArg() != 2 {
						return cli.Exit("usage: settings set <key> <value>", 1)
					}

					key, value := c.Args().Get(0), c.Args().Get(1)
					if err := application.Settings.Set(c.Context, key, value); err != nil {
						utils.PrintError(err.Error())
						return err
					}

					utils.PrintSuccess(fmt.Sprintf("%s = %s", key, color.CyanString("%s", value)))
					return nil
				},
			},
			{
				Name:      "unset",
				Usage:     "Remove a persisted setting, falling back to the environment",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					application, err := app.FromContext(c)
					if err != nil {
						return err
					}

					key := c.Args().First()
					if err := application.Settings.Unset(c.Context, key); err != nil {
						utils.PrintError(err.Error())
						return err
					}

					utils.PrintSuccess("Removed " + key)
					return nil
				},
			},
		},
	}
}
