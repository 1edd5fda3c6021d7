// Package app provides the application initialization and lifecycle management
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/meetparse/internal/catalog"
	"github.com/tildaslashalef/meetparse/internal/config"
	"github.com/tildaslashalef/meetparse/internal/database"
	"github.com/tildaslashalef/meetparse/internal/hy3"
	"github.com/tildaslashalef/meetparse/internal/loggy"
)

// App represents the application instance with its dependencies
type App struct {
	Config   *config.Config
	Logger   *loggy.Logger
	Parser   *hy3.Parser
	Catalog  *catalog.Service
	Settings *config.SettingsService
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
	)

	if err := database.InitDB(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	db, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	app, err := initServices(cfg, db)
	if err != nil {
		return nil, err
	}

	loggy.Info("Application initialized successfully")
	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	if err := loggy.Init(loggerConfig(cfg)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loggerConfig overlays the logging section of cfg on the logger defaults
func loggerConfig(cfg *config.Config) loggy.Config {
	lc := loggy.DefaultConfig()
	lc.Level = config.ParseLogLevel(cfg.Logging.Level)
	lc.AddSource = cfg.Logging.AddSource

	if cfg.Logging.Format != "" {
		lc.Format = cfg.Logging.Format
	}
	if cfg.Logging.Output != "" {
		lc.Output = cfg.Logging.Output
	}
	if cfg.Logging.TimeFormat != "" {
		lc.TimeFormat = cfg.Logging.TimeFormat
	}
	return lc
}

// initServices initializes all application services
func initServices(cfg *config.Config, db *sql.DB) (*App, error) {
	logger := loggy.GetGlobalLogger()

	settingsService := config.NewSettingsService(db, cfg, logger)
	if err := settingsService.Load(context.Background()); err != nil {
		loggy.Warn("Failed to load persisted settings", "error", err)
	}

	parser, err := NewParser(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Parser:   parser,
		Catalog:  catalog.NewService(db, logger, parser),
		Settings: settingsService,
	}, nil
}

// NewParser builds a parser from the parser section of cfg
func NewParser(cfg *config.Config, logger *loggy.Logger) (*hy3.Parser, error) {
	policy, err := hy3.ParsePolicy(cfg.Parser.UnknownRecords)
	if err != nil {
		return nil, err
	}

	enc, err := hy3.LookupEncoding(cfg.Parser.Encoding)
	if err != nil {
		return nil, err
	}

	options := []hy3.ParserOption{
		hy3.WithOptions(hy3.Options{DefaultCountry: cfg.Parser.DefaultCountry}),
		hy3.WithUnknownRecordPolicy(policy),
	}
	if enc != nil {
		options = append(options, hy3.WithEncoding(enc))
	}

	return hy3.NewParser(logger, options...), nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := database.CloseDB(); err != nil {
		loggy.Error("Error closing database connection", "error", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
