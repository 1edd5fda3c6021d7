package hy3

import (
	"strconv"
	"strings"
	"time"
)

const (
	// dateCreatedLayout is DDMMYYYY HH:MM AM/PM. The PM element only matches
	// upper case and the 3 element accepts hour 0, so parseDateCreated
	// upper-cases the value and rejects hour 0 itself.
	dateCreatedLayout = "02012006 3:04 PM"
	// meetDateLayout is MMDDYYYY
	meetDateLayout = "01022006"

	// hourTensIndex is the position of the tens digit of the hour inside the date created field
	hourTensIndex = 9
)

// decodeFileInfo decodes an A1 record
func decodeFileInfo(line string, file *ParsedFile, _ Options) error {
	file.FileDescription = Extract(line, 5, 25)
	file.Software = Software{
		Name:    Extract(line, 30, 15),
		Version: Extract(line, 45, 10),
	}

	raw := Extract(line, 59, 17)
	created, err := parseDateCreated(raw)
	if err != nil {
		return &FieldError{Record: RecordFileInfo, Field: "date_created", Value: raw, Err: err}
	}
	file.DateCreated = created
	file.Licensee = Extract(line, 76, 53)

	return nil
}

// decodeMeetInfo decodes a B1 record and starts a new meet
func decodeMeetInfo(line string, file *ParsedFile, opts Options) error {
	meet := &Meet{
		Name:     Extract(line, 3, 45),
		Facility: Extract(line, 48, 45),
	}

	var err error
	if meet.StartDate, err = parseMeetDate(line, 93, "start_date"); err != nil {
		return err
	}
	if meet.EndDate, err = parseMeetDate(line, 101, "end_date"); err != nil {
		return err
	}

	raw := Extract(line, 117, 5)
	meet.Altitude, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return &FieldError{Record: RecordMeetInfo, Field: "altitude", Value: raw, Err: err}
	}

	// TODO: derive the country once the team (C1) records are decoded
	meet.Country = opts.DefaultCountry

	file.Meet = meet
	return nil
}

// decodeMeetDetails decodes a B2 record into the meet started by B1
func decodeMeetDetails(line string, file *ParsedFile, _ Options) error {
	meet := file.Meet
	if meet == nil {
		return ErrMeetNotStarted
	}

	meet.Masters = Extract(line, 94, 2) == mastersClassCode
	meet.TypeCode = Extract(line, 97, 2)

	meetType, err := LookupMeetType(meet.TypeCode)
	if err != nil {
		return err
	}
	meet.Type = meetType

	course, err := LookupCourse(Extract(line, 99, 1))
	if err != nil {
		return err
	}
	meet.Course = course

	return nil
}

// parseDateCreated parses the A1 date created value. Writers pad a single
// digit hour with a space instead of a zero, which is replaced before parsing.
// The meridiem is matched in any case and the hour must be 1 to 12.
func parseDateCreated(raw string) (time.Time, error) {
	if len(raw) > hourTensIndex && raw[hourTensIndex] == ' ' {
		raw = raw[:hourTensIndex] + "0" + raw[hourTensIndex+1:]
	}

	created, err := time.Parse(dateCreatedLayout, strings.ToUpper(raw))
	if err != nil {
		return time.Time{}, err
	}

	if fields := strings.Fields(raw); len(fields) > 1 {
		hour, _, _ := strings.Cut(fields[1], ":")
		if n, err := strconv.Atoi(hour); err == nil && n == 0 {
			return time.Time{}, ErrHourOutOfRange
		}
	}

	return created, nil
}

func parseMeetDate(line string, start int, field string) (time.Time, error) {
	raw := Extract(line, start, 8)
	t, err := time.Parse(meetDateLayout, raw)
	if err != nil {
		return time.Time{}, &FieldError{Record: RecordMeetInfo, Field: field, Value: raw, Err: err}
	}
	return t, nil
}
