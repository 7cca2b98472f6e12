package notes

import (
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// NoteID is a server-assigned note identifier.
//
// Servers may hand out string or numeric ids; both decode into a NoteID.
// The value is placed into request paths verbatim, without escaping.
type NoteID string

// IntID returns the NoteID for a numeric identifier.
func IntID(n int64) NoteID {
	return NoteID(strconv.FormatInt(n, 10))
}

func (id NoteID) String() string {
	return string(id)
}

// Int64 reports the numeric form of the id, if it has one.
func (id NoteID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON writes canonical integers as JSON numbers and everything else as strings.
func (id NoteID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int64(); ok && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return []byte(strconv.Quote(string(id))), nil
}

func (id *NoteID) UnmarshalJSON(data []byte) error {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return fmt.Errorf("decoding note id: %w", err)
	}

	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return fmt.Errorf("decoding note id: %w", err)
		}
		*id = NoteID(s)
	case jsonparser.Number:
		*id = NoteID(value)
	case jsonparser.Null:
		*id = ""
	default:
		return fmt.Errorf("decoding note id: unexpected %s", dataType)
	}
	return nil
}
