// Package hy3 decodes HY-TEK HY3 meet result files.
//
// Every line of an HY3 file starts with a two character record code that
// selects a fixed column layout. Decoders read their columns with Extract and
// write the values into a shared ParsedFile, so the lines of one file must be
// fed to the decoders in file order by a single goroutine.
package hy3

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extract returns at most length characters of line starting at the 1-based
// column start, with trailing whitespace removed. Leading whitespace is kept.
// Positions past the end of the line yield a shorter or empty value.
func Extract(line string, start, length int) string {
	if start < 1 || length <= 0 {
		return ""
	}
	from := start - 1

	if isASCII(line) {
		if from >= len(line) {
			return ""
		}
		to := min(from+length, len(line))
		return strings.TrimRightFunc(line[from:to], unicode.IsSpace)
	}

	runes := []rune(line)
	if from >= len(runes) {
		return ""
	}
	to := min(from+length, len(runes))
	return strings.TrimRightFunc(string(runes[from:to]), unicode.IsSpace)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
