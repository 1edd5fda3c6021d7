package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tildaslashalef/meetparse/internal/migrations"
)

func TestMigrationRows(t *testing.T) {
	available := []migrations.Migration{
		{Version: 1, Name: "create_settings"},
		{Version: 2, Name: "create_imports"},
	}

	tests := []struct {
		name    string
		current uint
		dirty   bool
		want    []string
	}{
		{"fresh database", 0, false, []string{"pending", "pending"}},
		{"partly migrated", 1, false, []string{"applied", "pending"}},
		{"fully migrated", 2, false, []string{"applied", "applied"}},
		{"failed last migration", 2, true, []string{"applied", "dirty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := migrationRows(available, tt.current, tt.dirty)
			assert.Len(t, rows, len(available))
			for i, row := range rows {
				assert.Equal(t, available[i].Name, row[1])
				assert.Equal(t, tt.want[i], row[2])
			}
		})
	}
}
