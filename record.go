package notes

import (
	"bytes"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"
)

const (
	fieldID        = "id"
	fieldCreatedAt = "createdAt"
)

// Note is a single note as returned by the server.
//
// Only the identifier and creation timestamp are modelled. Every other
// property lands in Fields, so notes survive server-side schema changes.
type Note struct {
	ID NoteID
	// CreatedAt is kept as the server sent it (ISO-8601).
	CreatedAt string
	Fields    map[string]any
}

// Get returns a field by name, including "id" and "createdAt".
func (n *Note) Get(key string) (any, bool) {
	switch key {
	case fieldID:
		return n.ID, n.ID != ""
	case fieldCreatedAt:
		return n.CreatedAt, n.CreatedAt != ""
	}
	v, ok := n.Fields[key]
	return v, ok
}

// String returns a string field, or "" when it is missing or not a string.
func (n *Note) String(key string) string {
	v, _ := n.Get(key)
	s, _ := v.(string)
	return s
}

func (n Note) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Fields)+2)
	for k, v := range n.Fields {
		m[k] = v
	}
	if n.ID != "" {
		m[fieldID] = n.ID
	}
	if n.CreatedAt != "" {
		m[fieldCreatedAt] = n.CreatedAt
	}
	return json.Marshal(m)
}

func (n *Note) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	note := Note{Fields: map[string]any{}}
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		switch string(key) {
		case fieldID:
			if dataType == jsonparser.String {
				s, err := jsonparser.ParseString(value)
				if err != nil {
					return err
				}
				note.ID = NoteID(s)
				return nil
			}
			return note.ID.UnmarshalJSON(value)
		case fieldCreatedAt:
			if dataType == jsonparser.String {
				s, err := jsonparser.ParseString(value)
				if err != nil {
					return err
				}
				note.CreatedAt = s
				return nil
			}
		}

		v, err := decodeValue(value, dataType)
		if err != nil {
			return err
		}
		note.Fields[string(key)] = v
		return nil
	})
	if err != nil {
		return fmt.Errorf("decoding note: %w", err)
	}

	*n = note
	return nil
}

// decodeValue turns one jsonparser value into its generic Go form.
// jsonparser hands out strings without their quotes.
func decodeValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	}

	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, err
	}
	return v, nil
}
