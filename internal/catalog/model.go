// Package catalog stores parsed meet files in the local database
package catalog

import (
	"path/filepath"
	"time"

	"github.com/tildaslashalef/meetparse/internal/hy3"
	"github.com/tildaslashalef/meetparse/internal/ulid"
)

// Import is one stored parse of a meet file
type Import struct {
	ID         string
	Label      string
	SourcePath string
	MeetID     string // empty when the file had no meet record
	File       *hy3.ParsedFile
	Records    int
	Skipped    int
	CreatedAt  time.Time
}

// NewImport wraps a parse result in an Import with fresh ids
func NewImport(label, sourcePath string, result *hy3.Result) *Import {
	imp := &Import{
		ID:         ulid.ImportID(),
		Label:      label,
		SourcePath: sourcePath,
		File:       result.File,
		Records:    result.Records,
		CreatedAt:  time.Now().UTC(),
	}
	for _, n := range result.Skipped {
		imp.Skipped += n
	}
	if imp.File != nil && imp.File.Meet != nil {
		imp.MeetID = ulid.MeetID()
	}
	return imp
}

// MeetName returns the meet name or "" when there is no meet
func (i *Import) MeetName() string {
	if i.File == nil || i.File.Meet == nil {
		return ""
	}
	return i.File.Meet.Name
}

// FileName returns the base name of the source path
func (i *Import) FileName() string {
	return filepath.Base(i.SourcePath)
}
