package hy3

import "sort"

// Record codes with a registered decoder
const (
	RecordFileInfo    = "A1"
	RecordMeetInfo    = "B1"
	RecordMeetDetails = "B2"
)

// DecodeFunc decodes one line into file. It must only read columns through Extract.
type DecodeFunc func(line string, file *ParsedFile, opts Options) error

var decoders = map[string]DecodeFunc{
	RecordFileInfo:    decodeFileInfo,
	RecordMeetInfo:    decodeMeetInfo,
	RecordMeetDetails: decodeMeetDetails,
}

// RecordCode returns the record code held in the first two columns of line
func RecordCode(line string) string {
	return Extract(line, 1, 2)
}

// LookupDecoder returns the decoder registered for a record code
func LookupDecoder(code string) (DecodeFunc, bool) {
	decode, ok := decoders[code]
	return decode, ok
}

// SupportedRecords lists the record codes that have a decoder, sorted
func SupportedRecords() []string {
	codes := make([]string, 0, len(decoders))
	for code := range decoders {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DecodeLine dispatches a single line to the decoder for its record code.
// The second return value is false when the code has no decoder.
func DecodeLine(line string, file *ParsedFile, opts Options) (bool, error) {
	decode, ok := LookupDecoder(RecordCode(line))
	if !ok {
		return false, nil
	}
	return true, decode(line, file, opts)
}
