// Package migrations provides embedded SQL migrations for the catalog database
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/tildaslashalef/meetparse/internal/loggy"
)

//go:embed sql
var migrationsFS embed.FS

// Migration is one embedded schema change
type Migration struct {
	Version uint
	Name    string
}

// GetSource creates a migrate.Source from the embedded migrations
func GetSource() (source.Driver, error) {
	migrationFS, err := fs.Sub(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to access embedded migrations: %w", err)
	}

	src, err := iofs.New(migrationFS, ".")
	if err != nil {
		loggy.Error("Failed to create migration source", "error", err)
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	return src, nil
}

// Available lists the embedded migrations in version order
func Available() ([]Migration, error) {
	names, err := files()
	if err != nil {
		return nil, err
	}

	var list []Migration
	for _, name := range names {
		m, err := source.DefaultParse(name)
		if err != nil {
			return nil, fmt.Errorf("parsing migration file %s: %w", name, err)
		}
		if m.Direction != source.Up {
			continue
		}
		list = append(list, Migration{Version: m.Version, Name: m.Identifier})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list, nil
}

func files() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("reading embedded migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
