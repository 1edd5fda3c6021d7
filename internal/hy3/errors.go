package hy3

import (
	"errors"
	"fmt"
)

var (
	// ErrMeetNotStarted is returned when a B2 record arrives before any B1 record
	ErrMeetNotStarted = errors.New("meet details record before meet info record")

	// ErrUnknownRecord is returned for unsupported record codes when the parser runs with PolicyError
	ErrUnknownRecord = errors.New("unknown record type")

	// ErrHourOutOfRange is returned when a 12-hour clock value has hour 0
	ErrHourOutOfRange = errors.New("hour out of range 1-12")

	// ErrBinaryInput is returned when the input does not look like a text file
	ErrBinaryInput = errors.New("input is not a text file")
)

// UnknownCodeError is returned when a code is missing from a lookup table
type UnknownCodeError struct {
	Table string
	Code  string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Table, e.Code)
}

// FieldError is returned when a field value cannot be converted to its type
type FieldError struct {
	Record string
	Field  string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s: invalid value %q: %v", e.Record, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LineError ties a decoding failure to the line it came from
type LineError struct {
	Line   int
	Record string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Record, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
