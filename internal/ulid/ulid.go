// Package ulid wraps github.com/oklog/ulid/v2 to produce prefixed,
// lexicographically sortable identifiers for stored imports and meets.
package ulid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for the kinds of identifiers handed out by meetparse
const (
	// PrefixImport identifies a stored import of a meet file
	PrefixImport = "imp"

	// PrefixMeet identifies a stored meet
	PrefixMeet = "meet"

	// PrefixParse identifies a single parse run in logs
	PrefixParse = "parse"

	// PrefixSetting identifies a persisted setting
	PrefixSetting = "set"

	// PrefixSeparator is used to separate the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// ULID is a ulid.ULID with an optional prefix
type ULID struct {
	ulid.ULID
	prefix string
}

// Generate creates a new ULID with the current timestamp
func Generate() ULID {
	return NewWithTime(time.Now())
}

// GenerateWithPrefix creates a new ULID with the current timestamp and a prefix
func GenerateWithPrefix(prefix string) ULID {
	id := NewWithTime(time.Now())
	id.prefix = prefix
	return id
}

// NewWithTime creates a new ULID with a specific timestamp
func NewWithTime(t time.Time) ULID {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	entropyLock.Unlock()
	return ULID{id, ""}
}

// Parse parses a plain or prefixed ULID such as "imp-01AN4Z07BY79KA1307SR9X4MV3"
func Parse(id string) (ULID, error) {
	prefix, rawID, found := strings.Cut(id, PrefixSeparator)
	if !found {
		prefix, rawID = "", id
	}

	parsed, err := ulid.Parse(rawID)
	if err != nil {
		return ULID{}, err
	}

	return ULID{parsed, prefix}, nil
}

// Validate reports whether id is a valid plain or prefixed ULID
func Validate(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// IsZero returns true if the ULID is the zero value
func (u ULID) IsZero() bool {
	return u.ULID == ulid.ULID{}
}

// Prefix returns the prefix of the ULID
func (u ULID) Prefix() string {
	return u.prefix
}

// HasPrefix returns true if the ULID has a prefix
func (u ULID) HasPrefix() bool {
	return u.prefix != ""
}

// String returns "prefix-ulid", or the bare ULID when there is no prefix
func (u ULID) String() string {
	if u.prefix != "" {
		return u.prefix + PrefixSeparator + u.ULID.String()
	}
	return u.ULID.String()
}

// Time returns the timestamp component of the ULID
func (u ULID) Time() time.Time {
	return ulid.Time(u.ULID.Time())
}

// ImportID generates a new ULID with the import prefix
func ImportID() string {
	return GenerateWithPrefix(PrefixImport).String()
}

// MeetID generates a new ULID with the meet prefix
func MeetID() string {
	return GenerateWithPrefix(PrefixMeet).String()
}

// ParseID generates a new ULID with the parse prefix
func ParseID() string {
	return GenerateWithPrefix(PrefixParse).String()
}

// SettingID generates a new ULID with the setting prefix
func SettingID() string {
	return GenerateWithPrefix(PrefixSetting).String()
}
