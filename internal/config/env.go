package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DefaultConfigDir returns ~/.meetparse
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".meetparse"), nil
}

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for ~/.meetparse)
// - configFilePath: Path to .env file (or empty for <configDir>/.env)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	cfg.configDir = configDir

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// ENV_FILE_PATH points at a custom .env file
	envFilePath := getEnvString("ENV_FILE_PATH", "")
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(configFilePath); err != nil {
			// Then try current directory as fallback
			_ = godotenv.Load()
		}
	}

	cfg.Parser = ParserConfig{
		DefaultCountry: getEnvString("MEETPARSE_DEFAULT_COUNTRY", "USA"),
		UnknownRecords: getEnvString("MEETPARSE_UNKNOWN_RECORDS", "ignore"),
		Encoding:       getEnvString("MEETPARSE_ENCODING", "windows-1252"),
	}

	cfg.Export = ExportConfig{
		Format: getEnvString("MEETPARSE_EXPORT_FORMAT", "text"),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString("MEETPARSE_DB_PATH", filepath.Join(configDir, "meetparse.db")),
		BusyTimeout:     getEnvInt("MEETPARSE_DB_BUSY_TIMEOUT", 5000),
		JournalMode:     getEnvString("MEETPARSE_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("MEETPARSE_DB_SYNCHRONOUS_MODE", "NORMAL"),
		CacheSize:       getEnvInt("MEETPARSE_DB_CACHE_SIZE", -16000),
		ForeignKeys:     getEnvBool("MEETPARSE_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("MEETPARSE_DB_CONN_MAX_LIFE", 5*time.Minute),
		QueryTimeout:    getEnvDuration("MEETPARSE_DB_QUERY_TIMEOUT", 30*time.Second),
		ConnectTimeout:  getEnvDuration("MEETPARSE_DB_CONNECT_TIMEOUT", 10*time.Second),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("MEETPARSE_LOG_LEVEL", "info"),
		Format:     getEnvString("MEETPARSE_LOG_FORMAT", "text"),
		Output:     getEnvString("MEETPARSE_LOG_OUTPUT", filepath.Join(configDir, "meetparse.log")),
		AddSource:  getEnvBool("MEETPARSE_LOG_ADD_SOURCE", false),
		TimeFormat: getTimeFormat(getEnvString("MEETPARSE_LOG_TIME_FORMAT", "RFC3339")),
	}

	return cfg, cfg.Validate()
}
