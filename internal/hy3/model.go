package hy3

import "time"

// Software identifies the program that wrote the file
type Software struct {
	Name    string
	Version string
}

// Meet holds the meet level fields of the B1 and B2 records
type Meet struct {
	Name      string
	Facility  string
	StartDate time.Time
	EndDate   time.Time
	Altitude  int
	// Country is not encoded in the meet records; it comes from Options.DefaultCountry.
	Country  string
	Masters  bool
	TypeCode string
	Type     MeetType
	Course   Course
}

// ParsedFile is the result aggregated from the lines of one HY3 file.
// Meet stays nil until a B1 record has been decoded.
type ParsedFile struct {
	FileDescription string
	Software        Software
	DateCreated     time.Time
	Licensee        string
	Meet            *Meet
}

// NewParsedFile returns an empty aggregate for a single file
func NewParsedFile() *ParsedFile {
	return &ParsedFile{}
}

// Options carries caller supplied values the records cannot provide
type Options struct {
	// DefaultCountry is copied verbatim to Meet.Country
	DefaultCountry string
}
