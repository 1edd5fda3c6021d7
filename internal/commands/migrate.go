package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/database"
	"github.com/tildaslashalef/meetparse/internal/migrations"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

// MigrateCommand returns the CLI command for database migrations
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Manage database migrations",
		Hidden: true,
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(c *cli.Context) error {
					utils.PrintInfo("Applying embedded migrations")

					if err := database.RunMigrations(); err != nil {
						utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
						return fmt.Errorf("failed to apply migrations: %w", err)
					}

					return printVersion()
				},
			},
			{
				Name:  "down",
				Usage: "Revert the last migration",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of migrations to revert",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					utils.PrintWarning(fmt.Sprintf("Reverting %d embedded migration(s)", steps))

					if err := database.RevertMigrations(steps); err != nil {
						utils.PrintError(fmt.Sprintf("Failed to revert migrations: %s", err))
						return fmt.Errorf("failed to revert migrations: %w", err)
					}

					return printVersion()
				},
			},
			{
				Name:  "status",
				Usage: "List embedded migrations and the current schema version",
				Action: func(c *cli.Context) error {
					version, dirty, err := database.MigrationVersion()
					if err != nil {
						utils.PrintError(fmt.Sprintf("Failed to read schema version: %s", err))
						return err
					}

					available, err := migrations.Available()
					if err != nil {
						utils.PrintError(fmt.Sprintf("Failed to list migrations: %s", err))
						return err
					}

					utils.PrintTable([]string{"Version", "Name", "State"}, migrationRows(available, version, dirty))
					return printVersion()
				},
			},
		},
	}
}

func printVersion() error {
	version, dirty, err := database.MigrationVersion()
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to read schema version: %s", err))
		return err
	}

	if dirty {
		utils.PrintWarning(fmt.Sprintf("Schema version %d is dirty", version))
		return nil
	}
	utils.PrintSuccess(fmt.Sprintf("Schema version %d", version))
	return nil
}

// migrationRows marks each migration applied, dirty or pending relative to current
func migrationRows(available []migrations.Migration, current uint, dirty bool) [][]string {
	rows := make([][]string, 0, len(available))
	for _, m := range available {
		state := "pending"
		switch {
		case m.Version == current && dirty:
			state = "dirty"
		case m.Version <= current:
			state = "applied"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", m.Version), m.Name, state})
	}
	return rows
}
