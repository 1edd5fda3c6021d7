package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/meetparse/internal/hy3"
)

func sampleFile() *hy3.ParsedFile {
	return &hy3.ParsedFile{
		FileDescription: "Results File",
		Software:        hy3.Software{Name: "Hy-Tek, Ltd", Version: "MM5 7.0Gb"},
		DateCreated:     time.Date(2023, 11, 5, 20, 30, 0, 0, time.UTC),
		Licensee:        "Riverside Aquatic Club",
		Meet: &hy3.Meet{
			Name:      "Spring Invitational",
			Facility:  "Riverside Natatorium",
			StartDate: time.Date(2023, 11, 4, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
			Altitude:  120,
			Country:   "USA",
			Masters:   false,
			TypeCode:  "01",
			Type:      hy3.MeetTypeAgeGroup,
			Course:    hy3.CourseShortYards,
		},
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sampleFile())

	assert.Equal(t, "2023-11-05T20:30:00Z", doc.DateCreated)
	require.NotNil(t, doc.Meet)
	assert.Equal(t, "2023-11-04", doc.Meet.StartDate)
	assert.Equal(t, "2023-11-05", doc.Meet.EndDate)
	assert.Equal(t, "Age Group", doc.Meet.Type)
	assert.Equal(t, "SCY", doc.Meet.Course)
}

func TestNewDocumentWithoutMeet(t *testing.T) {
	doc := NewDocument(hy3.NewParsedFile())

	assert.Nil(t, doc.Meet)
	assert.Empty(t, doc.DateCreated)
}

func TestEncodeDecode(t *testing.T) {
	want := NewDocument(sampleFile())

	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, sampleFile(), format))
			assert.Contains(t, buf.String(), "Spring Invitational")

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodeWithoutMeetOmitsSection(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, hy3.NewParsedFile(), format))
			assert.NotContains(t, buf.String(), "meet")
		})
	}
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleFile(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "Spring Invitational")
	assert.Contains(t, out, "2023-11-04 to 2023-11-05")
	assert.Contains(t, out, "Hy-Tek, Ltd MM5 7.0Gb")

	_, err := Decode(strings.NewReader(out), FormatText)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{"toml", FormatTOML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.ErrorIs(t, Encode(&bytes.Buffer{}, sampleFile(), Format("xml")), ErrUnsupportedFormat)
}

func TestRowsWithoutMeet(t *testing.T) {
	rows := Rows(NewDocument(hy3.NewParsedFile()))
	assert.Equal(t, [2]string{"Meet", "(none)"}, rows[len(rows)-1])
}
