package hy3

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/tildaslashalef/meetparse/internal/loggy"
)

func sampleFile(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func validFile() string {
	return sampleFile(
		fileInfoLine("05112023  8:30 AM"),
		meetInfoLine("11042023", "11052023", "00120"),
		meetDetailsLine("05", "01", "Y"),
		buildLine("C1", field{3, "RAC"}),
		buildLine("D1", field{3, "M"}),
		buildLine("D1", field{3, "F"}),
	)
}

func TestParser_Parse(t *testing.T) {
	p := NewParser(loggy.NewNoopLogger(), WithOptions(Options{DefaultCountry: "USA"}))

	result, err := p.Parse(context.Background(), strings.NewReader(validFile()))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Records)
	assert.Equal(t, map[string]int{"C1": 1, "D1": 2}, result.Skipped)

	file := result.File
	assert.Equal(t, "Results File", file.FileDescription)
	assert.Equal(t, time.Date(2023, time.November, 5, 8, 30, 0, 0, time.UTC), file.DateCreated)
	require.NotNil(t, file.Meet)
	assert.Equal(t, 120, file.Meet.Altitude)
	assert.Equal(t, "USA", file.Meet.Country)
	assert.Equal(t, MeetTypeAgeGroup, file.Meet.Type)
	assert.Equal(t, CourseShortYards, file.Meet.Course)
	assert.False(t, file.Meet.Masters)
}

func TestParser_BlankLinesAndLF(t *testing.T) {
	input := fileInfoLine("05112023 08:30 AM") + "\n\n   \n" + meetInfoLine("11042023", "11052023", "00000") + "\n"

	result, err := NewParser(loggy.NewNoopLogger()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Records)
	assert.Empty(t, result.Skipped)
	require.NotNil(t, result.File.Meet)
	assert.Empty(t, result.File.Meet.Country)
}

func TestParser_UnknownRecordPolicy(t *testing.T) {
	p := NewParser(loggy.NewNoopLogger(), WithUnknownRecordPolicy(PolicyError))

	_, err := p.Parse(context.Background(), strings.NewReader(validFile()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRecord)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 4, lineErr.Line)
	assert.Equal(t, "C1", lineErr.Record)
}

func TestParser_DecoderErrorsCarryLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		record string
		check  func(t *testing.T, err error)
	}{
		{
			name: "meet details before meet info",
			input: sampleFile(
				fileInfoLine("05112023 08:30 AM"),
				meetDetailsLine("06", "01", "S"),
			),
			line:   2,
			record: RecordMeetDetails,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMeetNotStarted)
			},
		},
		{
			name: "unknown course",
			input: sampleFile(
				meetInfoLine("11042023", "11052023", "00000"),
				meetDetailsLine("06", "01", "Q"),
			),
			line:   2,
			record: RecordMeetDetails,
			check: func(t *testing.T, err error) {
				var codeErr *UnknownCodeError
				require.True(t, errors.As(err, &codeErr))
				assert.Equal(t, "Q", codeErr.Code)
			},
		},
		{
			name:   "malformed date created",
			input:  sampleFile(fileInfoLine("2023-11-05 08:30")),
			line:   1,
			record: RecordFileInfo,
			check: func(t *testing.T, err error) {
				var fieldErr *FieldError
				require.True(t, errors.As(err, &fieldErr))
				assert.Equal(t, "date_created", fieldErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(loggy.NewNoopLogger()).Parse(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)

			var lineErr *LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.line, lineErr.Line)
			assert.Equal(t, tt.record, lineErr.Record)
			tt.check(t, err)
		})
	}
}

func TestParser_BinaryInput(t *testing.T) {
	input := "A1\x00\x00\x00\x01\x02binary"
	_, err := NewParser(loggy.NewNoopLogger()).Parse(context.Background(), strings.NewReader(input))
	assert.ErrorIs(t, err, ErrBinaryInput)
}

func TestParser_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(loggy.NewNoopLogger()).Parse(ctx, strings.NewReader(validFile()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_Encoding(t *testing.T) {
	line := buildLine("B1",
		field{3, "Championnat de Genève"},
		field{48, "Piscine"},
		field{93, "11042023"},
		field{101, "11052023"},
		field{117, "00375"},
	)
	encoded, err := charmap.Windows1252.NewEncoder().String(line)
	require.NoError(t, err)

	p := NewParser(loggy.NewNoopLogger(), WithEncoding(charmap.Windows1252))
	result, err := p.Parse(context.Background(), strings.NewReader(encoded))
	require.NoError(t, err)
	require.NotNil(t, result.File.Meet)
	assert.Equal(t, "Championnat de Genève", result.File.Meet.Name)
	assert.Equal(t, "Piscine", result.File.Meet.Facility)
	assert.Equal(t, 375, result.File.Meet.Altitude)
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meet.hy3")
	require.NoError(t, os.WriteFile(path, []byte(validFile()), 0644))

	result, err := NewParser(loggy.NewNoopLogger()).ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Records)

	_, err = NewParser(loggy.NewNoopLogger()).ParseFile(context.Background(), filepath.Join(dir, "missing.hy3"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UnknownRecordPolicy
		wantErr bool
	}{
		{in: "", want: PolicyIgnore},
		{in: "ignore", want: PolicyIgnore},
		{in: "Error", want: PolicyError},
		{in: "strict", want: PolicyError},
		{in: "panic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParsePolicy(t, got.String()))
		})
	}
}

func mustParsePolicy(t *testing.T, s string) UnknownRecordPolicy {
	t.Helper()
	p, err := ParsePolicy(s)
	require.NoError(t, err)
	return p
}

func TestSupportedRecords(t *testing.T) {
	assert.Equal(t, []string{"A1", "B1", "B2"}, SupportedRecords())

	_, ok := LookupDecoder("Z0")
	assert.False(t, ok)

	handled, err := DecodeLine("Z0 trailer", NewParsedFile(), Options{})
	assert.False(t, handled)
	assert.NoError(t, err)
}

func TestParser_LogsParseID(t *testing.T) {
	var buf bytes.Buffer
	logger := loggy.New(&buf, loggy.Config{Level: slog.LevelDebug, Format: "json"})
	p := NewParser(logger)

	ctx := loggy.WithParseID(context.Background())
	_, err := p.Parse(ctx, strings.NewReader(validFile()))
	require.NoError(t, err)

	id := loggy.GetParseID(ctx)
	require.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"parse_id":"`+id+`"`)
	assert.Contains(t, buf.String(), "Skipped unsupported records")
}
