package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tildaslashalef/meetparse/internal/hy3"
	"github.com/tildaslashalef/meetparse/internal/loggy"
)

var (
	// ErrImportNotFound is returned when an import is not found
	ErrImportNotFound = errors.New("import not found")

	// ErrNoParsedFile is returned when saving an import without a parsed file
	ErrNoParsedFile = errors.New("import has no parsed file")
)

// PaginationParams defines parameters for paginated queries
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams creates a new PaginationParams instance with default values
func NewPaginationParams(page, limit int) PaginationParams {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// Offset returns the row offset of the page
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Repository defines the interface for import persistence operations
type Repository interface {
	SaveImport(ctx context.Context, imp *Import) error
	GetImport(ctx context.Context, id string) (*Import, error)
	ListImports(ctx context.Context, params PaginationParams) ([]*Import, error)
	DeleteImport(ctx context.Context, id string) error
	FindImportsByMeetName(ctx context.Context, searchTerm string, params PaginationParams) ([]*Import, error)
}

// SQLRepository implements Repository using SQLite database
type SQLRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRepository creates a new catalog SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) Repository {
	return &SQLRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

var importColumns = []string{
	"i.id",
	"i.label",
	"i.source_path",
	"i.file_description",
	"i.software_name",
	"i.software_version",
	"i.date_created",
	"i.licensee",
	"i.records",
	"i.skipped",
	"i.created_at",
	"m.id",
	"m.name",
	"m.facility",
	"m.start_date",
	"m.end_date",
	"m.altitude",
	"m.country",
	"m.masters",
	"m.type_code",
	"m.course",
}

// SaveImport stores the import row and its meet row in one transaction
func (r *SQLRepository) SaveImport(ctx context.Context, imp *Import) error {
	if imp.File == nil {
		return ErrNoParsedFile
	}
	if imp.CreatedAt.IsZero() {
		imp.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	file := imp.File
	query, args, err := r.builder.
		Insert("imports").
		Columns(
			"id",
			"label",
			"source_path",
			"file_description",
			"software_name",
			"software_version",
			"date_created",
			"licensee",
			"records",
			"skipped",
			"created_at",
		).
		Values(
			imp.ID,
			imp.Label,
			imp.SourcePath,
			file.FileDescription,
			file.Software.Name,
			file.Software.Version,
			nullTime(file.DateCreated),
			file.Licensee,
			imp.Records,
			imp.Skipped,
			imp.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert import query: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting import: %w", err)
	}

	if meet := file.Meet; meet != nil {
		query, args, err = r.builder.
			Insert("meets").
			Columns(
				"id",
				"import_id",
				"name",
				"facility",
				"start_date",
				"end_date",
				"altitude",
				"country",
				"masters",
				"type_code",
				"course",
				"created_at",
			).
			Values(
				imp.MeetID,
				imp.ID,
				meet.Name,
				meet.Facility,
				nullTime(meet.StartDate),
				nullTime(meet.EndDate),
				meet.Altitude,
				meet.Country,
				meet.Masters,
				meet.TypeCode,
				string(meet.Course),
				imp.CreatedAt,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("building insert meet query: %w", err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting meet: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	r.logger.Debug("Saved import", "id", imp.ID, "meet_id", imp.MeetID)
	return nil
}

func (r *SQLRepository) selectImports() sq.SelectBuilder {
	return r.builder.
		Select(importColumns...).
		From("imports i").
		LeftJoin("meets m ON m.import_id = i.id")
}

// GetImport retrieves an import by ID
func (r *SQLRepository) GetImport(ctx context.Context, id string) (*Import, error) {
	query, args, err := r.selectImports().
		Where(sq.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get import query: %w", err)
	}

	imp, err := scanImport(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImportNotFound
		}
		return nil, fmt.Errorf("getting import: %w", err)
	}

	return imp, nil
}

// ListImports returns one page of imports, newest first
func (r *SQLRepository) ListImports(ctx context.Context, params PaginationParams) ([]*Import, error) {
	query, args, err := r.selectImports().
		OrderBy("i.created_at DESC", "i.id DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list imports query: %w", err)
	}

	return r.queryImports(ctx, query, args...)
}

// FindImportsByMeetName returns a page of imports whose meet name contains searchTerm
func (r *SQLRepository) FindImportsByMeetName(ctx context.Context, searchTerm string, params PaginationParams) ([]*Import, error) {
	query, args, err := r.selectImports().
		Where(sq.Like{"m.name": "%" + strings.TrimSpace(searchTerm) + "%"}).
		OrderBy("i.created_at DESC", "i.id DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building find imports query: %w", err)
	}

	return r.queryImports(ctx, query, args...)
}

// DeleteImport removes an import and its meet
func (r *SQLRepository) DeleteImport(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	query, args, err := r.builder.Delete("meets").Where(sq.Eq{"import_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete meet query: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting meet: %w", err)
	}

	query, args, err = r.builder.Delete("imports").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete import query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		err = ErrImportNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

func (r *SQLRepository) queryImports(ctx context.Context, query string, args ...interface{}) ([]*Import, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var imports []*Import
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		imports = append(imports, imp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating imports: %w", err)
	}

	return imports, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanImport(row rowScanner) (*Import, error) {
	var (
		imp         Import
		file        = hy3.NewParsedFile()
		dateCreated sql.NullTime
		meetID      sql.NullString
		name        sql.NullString
		facility    sql.NullString
		startDate   sql.NullTime
		endDate     sql.NullTime
		altitude    sql.NullInt64
		country     sql.NullString
		masters     sql.NullBool
		typeCode    sql.NullString
		course      sql.NullString
	)

	err := row.Scan(
		&imp.ID,
		&imp.Label,
		&imp.SourcePath,
		&file.FileDescription,
		&file.Software.Name,
		&file.Software.Version,
		&dateCreated,
		&file.Licensee,
		&imp.Records,
		&imp.Skipped,
		&imp.CreatedAt,
		&meetID,
		&name,
		&facility,
		&startDate,
		&endDate,
		&altitude,
		&country,
		&masters,
		&typeCode,
		&course,
	)
	if err != nil {
		return nil, err
	}

	if dateCreated.Valid {
		file.DateCreated = dateCreated.Time
	}
	imp.File = file

	if !meetID.Valid {
		return &imp, nil
	}

	meet := &hy3.Meet{
		Name:     name.String,
		Facility: facility.String,
		Altitude: int(altitude.Int64),
		Country:  country.String,
		Masters:  masters.Bool,
		TypeCode: typeCode.String,
	}
	if startDate.Valid {
		meet.StartDate = startDate.Time.UTC()
	}
	if endDate.Valid {
		meet.EndDate = endDate.Time.UTC()
	}
	if meet.TypeCode != "" {
		if meet.Type, err = hy3.LookupMeetType(meet.TypeCode); err != nil {
			return nil, fmt.Errorf("stored meet %s: %w", meetID.String, err)
		}
	}
	if course.String != "" {
		if meet.Course, err = hy3.ParseCourse(course.String); err != nil {
			return nil, fmt.Errorf("stored meet %s: %w", meetID.String, err)
		}
	}

	imp.MeetID = meetID.String
	file.Meet = meet
	return &imp, nil
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
