package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/tildaslashalef/meetparse/internal/hy3"
	"github.com/tildaslashalef/meetparse/internal/loggy"
	"github.com/tildaslashalef/meetparse/internal/utils"
)

// Service provides catalog operations
type Service struct {
	repo     Repository
	logger   *loggy.Logger
	parser   *hy3.Parser
	newLabel func() string
}

// NewService creates a new catalog service
func NewService(db *sql.DB, logger *loggy.Logger, parser *hy3.Parser) *Service {
	return NewServiceWithRepository(NewSQLRepository(db, logger), logger, parser)
}

// NewServiceWithRepository creates a service with a custom repository implementation (for testing)
func NewServiceWithRepository(repo Repository, logger *loggy.Logger, parser *hy3.Parser) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		parser:   parser,
		newLabel: utils.GenerateLabel,
	}
}

// ImportFile parses path and stores the result. An empty label gets a generated one.
func (s *Service) ImportFile(ctx context.Context, path, label string) (*Import, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	result, err := s.parser.ParseFile(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if label == "" {
		label = s.newLabel()
	}

	imp := NewImport(label, absPath, result)
	if err := s.repo.SaveImport(ctx, imp); err != nil {
		return nil, fmt.Errorf("saving import: %w", err)
	}

	s.logger.Info("Imported meet file",
		"id", imp.ID,
		"label", imp.Label,
		"path", absPath,
		"meet", imp.MeetName(),
		"records", imp.Records,
		"skipped", imp.Skipped,
	)
	return imp, nil
}

// GetImport retrieves an import by ID
func (s *Service) GetImport(ctx context.Context, id string) (*Import, error) {
	return s.repo.GetImport(ctx, id)
}

// ListImports returns a page of imports, optionally filtered by meet name
func (s *Service) ListImports(ctx context.Context, params PaginationParams, meetName string) ([]*Import, error) {
	if meetName != "" {
		return s.repo.FindImportsByMeetName(ctx, meetName, params)
	}
	return s.repo.ListImports(ctx, params)
}

// DeleteImport removes an import and its meet
func (s *Service) DeleteImport(ctx context.Context, id string) error {
	if err := s.repo.DeleteImport(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted import", "id", id)
	return nil
}
