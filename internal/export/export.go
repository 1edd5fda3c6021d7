package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tildaslashalef/meetparse/internal/hy3"
)

// Format selects an output encoding
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for unknown format names
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the supported format names
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatTOML), string(FormatYAML)}
}

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// Encode writes file to w in the given format
func Encode(w io.Writer, file *hy3.ParsedFile, format Format) error {
	return EncodeDocument(w, NewDocument(file), format)
}

// EncodeDocument writes doc to w in the given format
func EncodeDocument(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	case FormatText:
		if _, err := io.WriteString(w, renderText(doc)+"\n"); err != nil {
			return fmt.Errorf("writing text: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil
}

// Decode reads a document previously written by Encode. Text output cannot be decoded.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("%w: cannot decode %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return &doc, nil
}

// Rows returns the field/value pairs shown by the text format
func Rows(doc *Document) [][2]string {
	rows := [][2]string{
		{"File", doc.FileDescription},
		{"Software", strings.TrimSpace(doc.Software.Name + " " + doc.Software.Version)},
		{"Created", doc.DateCreated},
		{"Licensee", doc.Licensee},
	}

	m := doc.Meet
	if m == nil {
		return append(rows, [2]string{"Meet", "(none)"})
	}

	masters := "no"
	if m.Masters {
		masters = "yes"
	}

	return append(rows,
		[2]string{"Meet", m.Name},
		[2]string{"Facility", m.Facility},
		[2]string{"Dates", dateRange(m.StartDate, m.EndDate)},
		[2]string{"Altitude", strconv.Itoa(m.Altitude)},
		[2]string{"Country", m.Country},
		[2]string{"Type", m.Type},
		[2]string{"Course", m.Course},
		[2]string{"Masters", masters},
	)
}

func renderText(doc *Document) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, row := range Rows(doc) {
		t.AppendRow(table.Row{row[0], row[1]})
	}
	return t.Render()
}

func dateRange(start, end string) string {
	if start == end || end == "" {
		return start
	}
	return start + " to " + end
}
