package hy3

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/meetparse/internal/loggy"
)

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()

	names := []string{"first", "second", "third"}
	var paths []string
	for i, name := range names {
		content := sampleFile(
			fileInfoLine("05112023 08:30 AM"),
			buildLine("B1",
				field{3, name},
				field{48, "Pool"},
				field{93, "11042023"},
				field{101, "11052023"},
				field{117, "0000" + string(rune('1'+i))},
			),
		)
		path := filepath.Join(dir, name+".hy3")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}

	p := NewParser(loggy.NewNoopLogger(), WithOptions(Options{DefaultCountry: "AUS"}))
	results, err := ParseFiles(context.Background(), p, paths)
	require.NoError(t, err)
	require.Len(t, results, len(names))

	for i, result := range results {
		require.NotNil(t, result.File.Meet)
		assert.Equal(t, names[i], result.File.Meet.Name)
		assert.Equal(t, i+1, result.File.Meet.Altitude)
		assert.Equal(t, "AUS", result.File.Meet.Country)
	}

	// every file owns its own aggregate
	assert.NotSame(t, results[0].File, results[1].File)
	assert.NotSame(t, results[0].File.Meet, results[1].File.Meet)
}

func TestParseFiles_Failure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.hy3")
	require.NoError(t, os.WriteFile(good, []byte(validFile()), 0644))

	results, err := ParseFiles(context.Background(), NewParser(loggy.NewNoopLogger()), []string{good, filepath.Join(dir, "missing.hy3")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.hy3")
	assert.Nil(t, results)
}

func TestParseFiles_Empty(t *testing.T) {
	results, err := ParseFiles(context.Background(), NewParser(loggy.NewNoopLogger()), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}
