package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/tildaslashalef/meetparse/internal/loggy"
	"github.com/tildaslashalef/meetparse/internal/ulid"
)

// Persisted setting keys
const (
	KeyDefaultCountry = "parser.default_country"
	KeyUnknownRecords = "parser.unknown_records"
	KeyEncoding       = "parser.encoding"
	KeyExportFormat   = "export.format"
)

// ErrUnknownSetting is returned when a key is not one of the persisted setting keys
var ErrUnknownSetting = errors.New("unknown setting")

// KnownKeys returns the setting keys that may be persisted, sorted
func KnownKeys() []string {
	keys := []string{KeyDefaultCountry, KeyUnknownRecords, KeyEncoding, KeyExportFormat}
	sort.Strings(keys)
	return keys
}

// Settings represents a persistent setting in the database
type Settings struct {
	ID        string
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SettingsRepository defines operations for managing settings in the database
type SettingsRepository interface {
	// GetSetting retrieves a setting by key
	GetSetting(ctx context.Context, key string) (string, error)

	// GetSettings retrieves multiple settings by prefix
	GetSettings(ctx context.Context, prefix string) (map[string]string, error)

	// SetSetting sets a setting value
	SetSetting(ctx context.Context, key, value string) error

	// DeleteSetting deletes a setting
	DeleteSetting(ctx context.Context, key string) error
}

// SQLSettingsRepository implements SettingsRepository using a SQL database
type SQLSettingsRepository struct {
	db     *sql.DB
	logger *loggy.Logger
	sq     squirrel.StatementBuilderType
}

// NewSQLSettingsRepository creates a new SQL settings repository
func NewSQLSettingsRepository(db *sql.DB, logger *loggy.Logger) SettingsRepository {
	return &SQLSettingsRepository{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// GetSetting retrieves a setting by key, returning "" when it is not set
func (r *SQLSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	query, args, err := r.sq.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building get setting query: %w", err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("executing get setting query: %w", err)
	}

	return value, nil
}

// GetSettings retrieves multiple settings by prefix
func (r *SQLSettingsRepository) GetSettings(ctx context.Context, prefix string) (map[string]string, error) {
	query, args, err := r.sq.Select("key", "value").
		From("settings").
		Where(squirrel.Like{"key": prefix + "%"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get settings query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing get settings query: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating setting rows: %w", err)
	}

	return settings, nil
}

// SetSetting inserts or updates a setting value
func (r *SQLSettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	existingValue, err := r.GetSetting(ctx, key)
	if err != nil {
		return fmt.Errorf("checking for existing setting: %w", err)
	}

	now := time.Now().UTC()

	if existingValue == "" {
		query, args, err := r.sq.Insert("settings").
			Columns("id", "key", "value", "created_at", "updated_at").
			Values(ulid.SettingID(), key, value, now, now).
			ToSql()
		if err != nil {
			return fmt.Errorf("building insert setting query: %w", err)
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("executing insert setting query: %w", err)
		}
		return nil
	}

	query, args, err := r.sq.Update("settings").
		Set("value", value).
		Set("updated_at", now).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update setting query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing update setting query: %w", err)
	}

	return nil
}

// DeleteSetting deletes a setting
func (r *SQLSettingsRepository) DeleteSetting(ctx context.Context, key string) error {
	query, args, err := r.sq.Delete("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete setting query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing delete setting query: %w", err)
	}

	return nil
}

// ApplySetting writes a single persisted setting onto cfg
func ApplySetting(cfg *Config, key, value string) error {
	switch key {
	case KeyDefaultCountry:
		cfg.Parser.DefaultCountry = strings.TrimSpace(value)
	case KeyUnknownRecords:
		cfg.Parser.UnknownRecords = strings.ToLower(strings.TrimSpace(value))
	case KeyEncoding:
		cfg.Parser.Encoding = strings.ToLower(strings.TrimSpace(value))
	case KeyExportFormat:
		cfg.Export.Format = strings.ToLower(strings.TrimSpace(value))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return nil
}

// SettingValue reads the value of a persisted setting key from cfg
func SettingValue(cfg *Config, key string) (string, error) {
	switch key {
	case KeyDefaultCountry:
		return cfg.Parser.DefaultCountry, nil
	case KeyUnknownRecords:
		return cfg.Parser.UnknownRecords, nil
	case KeyEncoding:
		return cfg.Parser.Encoding, nil
	case KeyExportFormat:
		return cfg.Export.Format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// LoadSettings overlays persisted settings onto cfg. Empty values are skipped.
func LoadSettings(ctx context.Context, cfg *Config, repo SettingsRepository) error {
	for _, prefix := range []string{"parser.", "export."} {
		settings, err := repo.GetSettings(ctx, prefix)
		if err != nil {
			return fmt.Errorf("loading %s settings: %w", strings.TrimSuffix(prefix, "."), err)
		}

		for key, value := range settings {
			if value == "" {
				continue
			}
			if err := ApplySetting(cfg, key, value); err != nil {
				// Stale keys from older versions are not fatal
				continue
			}
		}
	}

	return cfg.Validate()
}
