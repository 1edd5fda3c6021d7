package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tildaslashalef/meetparse/internal/config"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prev := utils.Output
	utils.Output = &out
	t.Cleanup(func() { utils.Output = prev })
	return &out
}

func TestPrintSetup(t *testing.T) {
	t.Run("seeded after reset", func(t *testing.T) {
		out := captureOutput(t)
		printSetup(&config.SetupResult{
			EnvPath:    "/home/coach/.meetparse/.env",
			BackupPath: "/home/coach/.meetparse/.env.20261018-101500.bak",
			Seeded:     []string{"MEETPARSE_DEFAULT_COUNTRY", "MEETPARSE_ENCODING"},
		})

		assert.Contains(t, out.String(), ".env.20261018-101500.bak")
		assert.Contains(t, out.String(), "with 2 settings")
		assert.Contains(t, out.String(), "MEETPARSE_DEFAULT_COUNTRY")
		assert.Contains(t, out.String(), "MEETPARSE_ENCODING")
	})

	t.Run("kept", func(t *testing.T) {
		out := captureOutput(t)
		printSetup(&config.SetupResult{EnvPath: "/home/coach/.meetparse/.env"})

		assert.Contains(t, out.String(), "Keeping existing")
		assert.Contains(t, out.String(), "--reset-config")
		assert.NotContains(t, out.String(), "Previous configuration")
	})
}
