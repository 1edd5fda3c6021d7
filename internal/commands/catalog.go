package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/app"
	"github.com/tildaslashalef/meetparse/internal/catalog"
	"github.com/tildaslashalef/meetparse/internal/export"
	"github.com/tildaslashalef/meetparse/internal/loggy"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

// ImportCommand returns the CLI command for storing parsed files in the catalog
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Parse HY3 meet files and store them in the catalog",
		ArgsUsage: "<file.hy3> [file.hy3...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "Label for the import (generated when empty)",
			},
		},
		Action: importAction,
	}
}

func importAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		return cli.Exit("at least one file is required", 1)
	}

	ctx := loggy.WithParseID(c.Context)
	var rows [][]string
	for _, path := range c.Args().Slice() {
		imp, err := application.Catalog.ImportFile(ctx, path, c.String("label"))
		if err != nil {
			utils.PrintError(err.Error())
			return err
		}
		rows = append(rows, importRow(imp))
	}

	utils.PrintSuccess(fmt.Sprintf("Imported %d %s", len(rows), utils.Plural(len(rows), "file")))
	utils.PrintTable(importHeaders, rows)
	return nil
}

// ListCommand returns the CLI command for listing stored imports
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List stored imports, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1, Usage: "Page number"},
			&cli.IntFlag{Name: "limit", Value: 10, Usage: "Imports per page (max 100)"},
			&cli.StringFlag{Name: "meet", Aliases: []string{"m"}, Usage: "Only imports whose meet name contains this text"},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	params := catalog.NewPaginationParams(c.Int("page"), c.Int("limit"))
	imports, err := application.Catalog.ListImports(c.Context, params, c.String("meet"))
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to list imports: %s", err))
		return err
	}

	if len(imports) == 0 {
		utils.PrintInfo("No imports found")
		return nil
	}

	rows := make([][]string, 0, len(imports))
	for _, imp := range imports {
		rows = append(rows, importRow(imp))
	}
	utils.PrintTable(importHeaders, rows)

	if c.String("meet") == "" {
		utils.PrintPageFooter(params.Page, len(imports), params.Limit)
	}
	return nil
}

// ShowCommand returns the CLI command for printing one stored import
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a stored import",
		ArgsUsage: "<import-id>",
		Flags:     []cli.Flag{formatFlag()},
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if c.NArg() != 1 {
		return cli.Exit("exactly one import id is required", 1)
	}

	format, err := resolveFormat(c, application)
	if err != nil {
		return err
	}

	imp, err := application.Catalog.GetImport(c.Context, c.Args().First())
	if err != nil {
		if errors.Is(err, catalog.ErrImportNotFound) {
			utils.PrintError(fmt.Sprintf("No import with id %s", c.Args().First()))
		}
		return err
	}

	if format == export.FormatText {
		utils.PrintHeading(imp.Label)
		utils.PrintKeyValue("ID", imp.ID)
		utils.PrintKeyValue("Source", color.YellowString("%s", imp.SourcePath))
		utils.PrintKeyValue("Imported", imp.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	return export.Encode(c.App.Writer, imp.File, format)
}

// DeleteCommand returns the CLI command for removing a stored import
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a stored import",
		ArgsUsage: "<import-id>",
		Action: func(c *cli.Context) error {
			application, err := app.FromContext(c)
			if err != nil {
				return err
			}

			if c.NArg() != 1 {
				return cli.Exit("exactly one import id is required", 1)
			}

			id := c.Args().First()
			if err := application.Catalog.DeleteImport(c.Context, id); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to delete %s: %s", id, err))
				return err
			}

			utils.PrintSuccess("Deleted " + id)
			return nil
		},
	}
}

var importHeaders = []string{"ID", "Label", "Meet", "Dates", "Course", "Records", "File"}

func importRow(imp *catalog.Import) []string {
	meet, dates, course := "-", "-", "-"
	if m := imp.File.Meet; m != nil {
		meet = m.Name
		dates = m.StartDate.Format(export.DateLayout)
		if !m.EndDate.Equal(m.StartDate) {
			dates += " to " + m.EndDate.Format(export.DateLayout)
		}
		if m.Course != "" {
			course = string(m.Course)
		}
	}

	return []string{
		imp.ID,
		imp.Label,
		meet,
		dates,
		course,
		strconv.Itoa(imp.Records),
		imp.FileName(),
	}
}
