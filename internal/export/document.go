// Package export renders parsed meet files as JSON, TOML, YAML or a text table
package export

import (
	"time"

	"github.com/tildaslashalef/meetparse/internal/hy3"
)

// Date layouts used in exported documents
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

// Document is the flat, serialisable view of a parsed file
type Document struct {
	FileDescription string        `json:"file_description" toml:"file_description" yaml:"file_description"`
	Software        Software      `json:"software" toml:"software" yaml:"software"`
	DateCreated     string        `json:"date_created,omitempty" toml:"date_created,omitempty" yaml:"date_created,omitempty"`
	Licensee        string        `json:"licensee" toml:"licensee" yaml:"licensee"`
	Meet            *MeetDocument `json:"meet,omitempty" toml:"meet,omitempty" yaml:"meet,omitempty"`
}

// Software names the program that wrote the file
type Software struct {
	Name    string `json:"name" toml:"name" yaml:"name"`
	Version string `json:"version" toml:"version" yaml:"version"`
}

// MeetDocument holds the meet fields with enum values rendered as labels
type MeetDocument struct {
	Name      string `json:"name" toml:"name" yaml:"name"`
	Facility  string `json:"facility" toml:"facility" yaml:"facility"`
	StartDate string `json:"start_date,omitempty" toml:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty" toml:"end_date,omitempty" yaml:"end_date,omitempty"`
	Altitude  int    `json:"altitude" toml:"altitude" yaml:"altitude"`
	Country   string `json:"country" toml:"country" yaml:"country"`
	Masters   bool   `json:"masters" toml:"masters" yaml:"masters"`
	TypeCode  string `json:"type_code,omitempty" toml:"type_code,omitempty" yaml:"type_code,omitempty"`
	Type      string `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
	Course    string `json:"course,omitempty" toml:"course,omitempty" yaml:"course,omitempty"`
}

// NewDocument converts a parsed file
func NewDocument(file *hy3.ParsedFile) *Document {
	doc := &Document{
		FileDescription: file.FileDescription,
		Software: Software{
			Name:    file.Software.Name,
			Version: file.Software.Version,
		},
		DateCreated: formatTime(file.DateCreated, DateTimeLayout),
		Licensee:    file.Licensee,
	}

	if m := file.Meet; m != nil {
		doc.Meet = &MeetDocument{
			Name:      m.Name,
			Facility:  m.Facility,
			StartDate: formatTime(m.StartDate, DateLayout),
			EndDate:   formatTime(m.EndDate, DateLayout),
			Altitude:  m.Altitude,
			Country:   m.Country,
			Masters:   m.Masters,
			TypeCode:  m.TypeCode,
			Course:    string(m.Course),
		}
		if m.Type != "" {
			doc.Meet.Type = m.Type.String()
		}
	}

	return doc
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
