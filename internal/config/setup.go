package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tildaslashalef/meetparse/internal/loggy"
)

//go:embed env.sample
var sampleEnv []byte

// SetupResult reports what SetupConfigDirectory did to the .env file
type SetupResult struct {
	EnvPath    string
	BackupPath string   // previous .env, set when reset replaced it
	Seeded     []string // MEETPARSE_* keys written from the sample, empty when the file was kept
}

// SetupConfigDirectory creates configDir and writes the sample .env into it.
// An existing .env is kept unless reset is set, in which case it is moved to
// a timestamped backup first.
func SetupConfigDirectory(configDir string, reset bool) (*SetupResult, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	result := &SetupResult{EnvPath: filepath.Join(configDir, ".env")}

	_, err := os.Stat(result.EnvPath)
	switch {
	case err == nil && !reset:
		loggy.Debug("Keeping existing env file", "path", result.EnvPath)
		return result, nil
	case err == nil:
		result.BackupPath = fmt.Sprintf("%s.%s.bak", result.EnvPath, time.Now().Format("20060102-150405"))
		if err := os.Rename(result.EnvPath, result.BackupPath); err != nil {
			return nil, fmt.Errorf("backing up %s: %w", result.EnvPath, err)
		}
		loggy.Info("Backed up env file", "path", result.EnvPath, "backup", result.BackupPath)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("checking %s: %w", result.EnvPath, err)
	}

	seeded, err := sampleKeys()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(result.EnvPath, sampleEnv, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", result.EnvPath, err)
	}
	result.Seeded = seeded

	loggy.Info("Wrote sample env file", "path", result.EnvPath, "keys", len(seeded))
	return result, nil
}

// sampleKeys lists the MEETPARSE_* keys set by the sample, sorted
func sampleKeys() ([]string, error) {
	values, err := godotenv.Unmarshal(string(sampleEnv))
	if err != nil {
		return nil, fmt.Errorf("parsing sample env file: %w", err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, "MEETPARSE_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
