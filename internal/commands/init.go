package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/config"
	"github.com/tildaslashalef/meetparse/internal/database"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

// InitCommand returns the CLI command for initializing meetparse
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize or update the meetparse environment",
		Description: "Creates the configuration directory with a sample .env file and " +
			"migrates the catalog database. Run it again after upgrading to update the schema.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset-config",
				Usage: "Back up the existing .env and write a fresh sample",
			},
		},
		Action: func(c *cli.Context) error {
			utils.PrintHeading("Initializing meetparse")

			configDir, err := config.DefaultConfigDir()
			if err != nil {
				utils.PrintError(err.Error())
				return err
			}
			utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))

			setup, err := config.SetupConfigDirectory(configDir, c.Bool("reset-config"))
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to set up config directory: %s", err))
				return fmt.Errorf("failed to set up config directory: %w", err)
			}
			printSetup(setup)

			configFilePath := setup.EnvPath
			cfg, err := config.LoadFromEnv(configDir, configFilePath)
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to load configuration: %s", err))
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			utils.PrintInfo("Initializing database...")
			if err := database.InitDB(cfg); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to initialize database: %s", err))
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			utils.PrintInfo("Applying database migrations...")
			if err := database.RunMigrations(); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			utils.PrintSuccess("meetparse initialized successfully!")
			utils.PrintInfo("Configuration file: " + color.YellowString("%s", configFilePath))
			utils.PrintInfo("Database location: " + color.YellowString("%s", cfg.Database.Path))
			utils.PrintInfo("Log file location: " + color.YellowString("%s", cfg.Logging.Output))
			fmt.Fprintln(c.App.Writer)
			utils.PrintInfo("Import a meet with " + color.CyanString("meetparse import results.hy3"))

			return nil
		},
	}
}

func printSetup(setup *config.SetupResult) {
	if setup.BackupPath != "" {
		utils.PrintWarning("Previous configuration saved to " + color.YellowString("%s", setup.BackupPath))
	}

	if len(setup.Seeded) == 0 {
		utils.PrintInfo("Keeping existing " + color.YellowString("%s", setup.EnvPath) + " (use --reset-config to replace it)")
		return
	}

	utils.PrintSuccess(fmt.Sprintf("Wrote %s with %d %s", setup.EnvPath, len(setup.Seeded), utils.Plural(len(setup.Seeded), "setting")))
	for _, key := range setup.Seeded {
		utils.PrintInfo("  " + key)
	}
}
