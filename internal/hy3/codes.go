package hy3

import "fmt"

// MeetType classifies a meet
type MeetType string

// Meet types known to the HY3 record layout
const (
	MeetTypeAgeGroup   MeetType = "age_group"
	MeetTypeHighSchool MeetType = "high_school"
	MeetTypeCollege    MeetType = "college"
	MeetTypeSummer     MeetType = "summer"
	MeetTypeYMCA       MeetType = "ymca"
	MeetTypeMasters    MeetType = "masters"
	MeetTypeDisability MeetType = "disability"
	MeetTypeOpen       MeetType = "open"
	MeetTypeOther      MeetType = "other"
)

// Course is the pool length classification of a meet
type Course string

// Courses
const (
	CourseShortMeters Course = "SCM"
	CourseShortYards  Course = "SCY"
	CourseLongMeters  Course = "LCM"
)

// Lookup table names reported by UnknownCodeError
const (
	TableMeetType = "meet type"
	TableCourse   = "course"
)

// mastersClassCode marks a masters meet in the B2 class column
const mastersClassCode = "06"

var meetTypes = map[string]MeetType{
	"01": MeetTypeAgeGroup,
	"02": MeetTypeHighSchool,
	"03": MeetTypeCollege,
	"04": MeetTypeSummer,
	"05": MeetTypeYMCA,
	"06": MeetTypeMasters,
	"07": MeetTypeDisability,
	"08": MeetTypeOpen,
	"09": MeetTypeOther,
}

var courses = map[string]Course{
	"S": CourseShortMeters,
	"1": CourseShortMeters,
	"Y": CourseShortYards,
	"2": CourseShortYards,
	"L": CourseLongMeters,
	"3": CourseLongMeters,
}

var meetTypeLabels = map[MeetType]string{
	MeetTypeAgeGroup:   "Age Group",
	MeetTypeHighSchool: "High School",
	MeetTypeCollege:    "College",
	MeetTypeSummer:     "Summer",
	MeetTypeYMCA:       "YMCA",
	MeetTypeMasters:    "Masters",
	MeetTypeDisability: "Disability",
	MeetTypeOpen:       "Open",
	MeetTypeOther:      "Other",
}

// LookupMeetType resolves a two character meet type code
func LookupMeetType(code string) (MeetType, error) {
	t, ok := meetTypes[code]
	if !ok {
		return "", &UnknownCodeError{Table: TableMeetType, Code: code}
	}
	return t, nil
}

// LookupCourse resolves a one character course code
func LookupCourse(code string) (Course, error) {
	c, ok := courses[code]
	if !ok {
		return "", &UnknownCodeError{Table: TableCourse, Code: code}
	}
	return c, nil
}

// String returns the display label of the meet type
func (t MeetType) String() string {
	if label, ok := meetTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Valid reports whether t is one of the known meet types
func (t MeetType) Valid() bool {
	_, ok := meetTypeLabels[t]
	return ok
}

// ParseCourse converts a stored course value back into a Course
func ParseCourse(s string) (Course, error) {
	c := Course(s)
	switch c {
	case CourseShortMeters, CourseShortYards, CourseLongMeters:
		return c, nil
	}
	return "", fmt.Errorf("invalid course %q", s)
}

// Unit returns the distance unit swum in this course
func (c Course) Unit() string {
	if c == CourseShortYards {
		return "yards"
	}
	return "meters"
}

// Description returns a long form label such as "Short Course Meters"
func (c Course) Description() string {
	switch c {
	case CourseShortMeters:
		return "Short Course Meters"
	case CourseShortYards:
		return "Short Course Yards"
	case CourseLongMeters:
		return "Long Course Meters"
	}
	return string(c)
}
