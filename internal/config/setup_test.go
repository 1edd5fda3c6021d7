package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConfigDirectory_Fresh(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "meetparse")

	result, err := SetupConfigDirectory(dir, false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".env"), result.EnvPath)
	assert.Empty(t, result.BackupPath)
	assert.Contains(t, result.Seeded, "MEETPARSE_DEFAULT_COUNTRY")
	assert.Contains(t, result.Seeded, "MEETPARSE_UNKNOWN_RECORDS")
	assert.Contains(t, result.Seeded, "MEETPARSE_EXPORT_FORMAT")
	assert.NotContains(t, result.Seeded, "MEETPARSE_DB_PATH", "commented out in the sample")
	assert.IsNonDecreasing(t, result.Seeded)

	data, err := os.ReadFile(result.EnvPath)
	require.NoError(t, err)
	assert.Equal(t, sampleEnv, data)
}

func TestSetupConfigDirectory_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("MEETPARSE_DEFAULT_COUNTRY=AUS\n"), 0644))

	result, err := SetupConfigDirectory(dir, false)
	require.NoError(t, err)
	assert.Empty(t, result.Seeded)
	assert.Empty(t, result.BackupPath)

	data, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "MEETPARSE_DEFAULT_COUNTRY=AUS\n", string(data))
}

func TestSetupConfigDirectory_Reset(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("MEETPARSE_DEFAULT_COUNTRY=AUS\n"), 0644))

	result, err := SetupConfigDirectory(dir, true)
	require.NoError(t, err)
	require.NotEmpty(t, result.BackupPath)
	assert.NotEmpty(t, result.Seeded)

	backup, err := os.ReadFile(result.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "MEETPARSE_DEFAULT_COUNTRY=AUS\n", string(backup))

	fresh, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, sampleEnv, fresh)
}

func TestSampleKeysLoadAsValidConfig(t *testing.T) {
	clearMeetparseEnv(t)
	dir := t.TempDir()

	result, err := SetupConfigDirectory(dir, false)
	require.NoError(t, err)
	for _, key := range result.Seeded {
		t.Cleanup(func() { os.Unsetenv(key) })
	}

	cfg, err := LoadFromEnv(dir, result.EnvPath)
	require.NoError(t, err)
	assert.Equal(t, "USA", cfg.Parser.DefaultCountry)
	assert.Equal(t, "windows-1252", cfg.Parser.Encoding)
}
