package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/app"
	"github.com/tildaslashalef/meetparse/internal/export"
	"github.com/tildaslashalef/meetparse/internal/hy3"
	"github.com/tildaslashalef/meetparse/internal/loggy"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: " + strings.Join(export.Formats(), ", ") + " (default: export.format setting)",
	}
}

// ParseCommand returns the CLI command for parsing files without storing them
func ParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse HY3 meet files and print the result",
		ArgsUsage: "<file.hy3> [file.hy3...]",
		Flags: []cli.Flag{
			formatFlag(),
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on record types that have no decoder",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Country assigned to the meet",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Input character set: utf-8, windows-1252 or iso-8859-1",
			},
		},
		Action: parseAction,
	}
}

func parseAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		return cli.Exit("at least one file is required", 1)
	}

	format, err := resolveFormat(c, application)
	if err != nil {
		return err
	}

	cfg := *application.Config
	if c.IsSet("country") {
		cfg.Parser.DefaultCountry = c.String("country")
	}
	if c.Bool("strict") {
		cfg.Parser.UnknownRecords = hy3.PolicyError.String()
	}
	if c.IsSet("encoding") {
		cfg.Parser.Encoding = c.String("encoding")
	}

	parser, err := app.NewParser(&cfg, application.Logger)
	if err != nil {
		return err
	}

	ctx := loggy.WithParseID(c.Context)
	results, err := hy3.ParseFiles(ctx, parser, c.Args().Slice())
	if err != nil {
		utils.PrintError(err.Error())
		return err
	}

	for i, result := range results {
		if format == export.FormatText {
			if len(results) > 1 {
				utils.PrintHeading(c.Args().Get(i))
			}
			printSkipped(result)
		}
		if err := export.Encode(c.App.Writer, result.File, format); err != nil {
			return err
		}
	}

	return nil
}

func resolveFormat(c *cli.Context, application *app.App) (export.Format, error) {
	name := application.Config.Export.Format
	if c.IsSet("format") {
		name = c.String("format")
	}
	return export.ParseFormat(name)
}

func printSkipped(result *hy3.Result) {
	if len(result.Skipped) == 0 {
		return
	}

	codes := make([]string, 0, len(result.Skipped))
	for code, n := range result.Skipped {
		codes = append(codes, fmt.Sprintf("%s×%d", code, n))
	}
	sort.Strings(codes)

	utils.PrintInfo(fmt.Sprintf("Decoded %d %s, skipped unsupported: %s",
		result.Records, utils.Plural(result.Records, "record"), strings.Join(codes, " ")))
}
