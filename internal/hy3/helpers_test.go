package hy3

import "strings"

// field places value at a 1-based column
type field struct {
	start int
	value string
}

// buildLine returns a 130 character record with code in columns 1-2 and the fields at their columns
func buildLine(code string, fields ...field) string {
	buf := []rune(strings.Repeat(" ", 130))
	copy(buf, []rune(code))
	for _, f := range fields {
		copy(buf[f.start-1:], []rune(f.value))
	}
	return string(buf)
}

func fileInfoLine(created string) string {
	return buildLine("A1",
		field{3, "07"},
		field{5, "Results File"},
		field{30, "Hy-Tek, Ltd"},
		field{45, "MM5 7.0Gb"},
		field{59, created},
		field{76, "Riverside Aquatic Club"},
	)
}

func meetInfoLine(start, end, altitude string) string {
	return buildLine("B1",
		field{3, "Spring Invitational"},
		field{48, "Riverside Natatorium"},
		field{93, start},
		field{101, end},
		field{117, altitude},
	)
}

func meetDetailsLine(class, typeCode, course string) string {
	return buildLine("B2",
		field{94, class},
		field{97, typeCode},
		field{99, course},
	)
}
