package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tildaslashalef/meetparse/internal/loggy"
)

// SettingsService provides operations for managing application settings
type SettingsService struct {
	repo   SettingsRepository
	config *Config
	logger *loggy.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *sql.DB, config *Config, logger *loggy.Logger) *SettingsService {
	return NewSettingsServiceWithRepository(NewSQLSettingsRepository(db, logger), config, logger)
}

// NewSettingsServiceWithRepository creates a settings service on top of repo
func NewSettingsServiceWithRepository(repo SettingsRepository, config *Config, logger *loggy.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// Get returns the effective value of key
func (s *SettingsService) Get(key string) (string, error) {
	return SettingValue(s.config, key)
}

// All returns the effective value of every known key
func (s *SettingsService) All() map[string]string {
	values := make(map[string]string, len(KnownKeys()))
	for _, key := range KnownKeys() {
		value, _ := SettingValue(s.config, key)
		values[key] = value
	}
	return values
}

// Set validates value against the config and persists it
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	previous := *s.config

	if err := ApplySetting(s.config, key, value); err != nil {
		return err
	}

	if err := s.config.Validate(); err != nil {
		*s.config = previous
		s.logger.Debug("Setting rejected", "key", key, "value", value, "error", err)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	stored, _ := SettingValue(s.config, key)
	if err := s.repo.SetSetting(ctx, key, stored); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	s.logger.Info("Setting saved", "key", key, "value", stored)
	return nil
}

// Unset removes a persisted override. The in-memory value is left untouched.
func (s *SettingsService) Unset(ctx context.Context, key string) error {
	if _, err := SettingValue(s.config, key); err != nil {
		return err
	}
	return s.repo.DeleteSetting(ctx, key)
}

// Load overlays persisted settings onto the config
func (s *SettingsService) Load(ctx context.Context) error {
	return LoadSettings(ctx, s.config, s.repo)
}
