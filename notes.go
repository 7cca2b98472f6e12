package notes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/notesapp/notes.go/pkg/constants"
)

// ListNotes fetches notes matching q and returns the response body as-is.
//
// The shape of the listing belongs to the server, so it is handed back as
// raw JSON. Use List to decode it into a type of your own.
func (c *Client) ListNotes(ctx context.Context, q ListQuery) (json.RawMessage, error) {
	res, err := List[json.RawMessage](ctx, c, q)
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// CreateNote creates a note from data, stamping it with the current time
// as createdAt. data itself is left untouched.
func (c *Client) CreateNote(ctx context.Context, data Data) (*Note, error) {
	return Create[Note](ctx, c, data)
}

// UpdateNote sends data to the note with the given id, unmodified.
func (c *Client) UpdateNote(ctx context.Context, id NoteID, data Data) (*Note, error) {
	return Update[Note](ctx, c, id, data)
}

// DeleteNote deletes the note with the given id. It reports true on any
// 2xx response; whatever the server sends back is discarded.
func (c *Client) DeleteNote(ctx context.Context, id NoteID) (bool, error) {
	return Delete(ctx, c, id)
}

// List issues GET /notes and decodes the response into T.
func List[T any](ctx context.Context, c *Client, q ListQuery) (*T, error) {
	resp, err := c.send(ctx, ErrListFailed, http.MethodGet, constants.NotesPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](resp)
}

// Create issues POST /notes with data plus a createdAt timestamp, and
// decodes the response into T.
//
// data may be any value that encodes to a JSON object; nil stands for an
// empty object. A createdAt already present in data is replaced.
func Create[T any](ctx context.Context, c *Client, data any) (*T, error) {
	body, err := withCreatedAt(data, c.timestamp())
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, ErrCreateFailed, http.MethodPost, constants.NotesPath, body)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](resp)
}

// Update issues PUT /notes/{id} with data as the body and decodes the
// response into T. Nothing is added to data.
func Update[T any](ctx context.Context, c *Client, id NoteID, data any) (*T, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.send(ctx, ErrUpdateFailed, http.MethodPut, notePath(id), body)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](resp)
}

// Delete issues DELETE /notes/{id}.
func Delete(ctx context.Context, c *Client, id NoteID) (bool, error) {
	resp, err := c.send(ctx, ErrDeleteFailed, http.MethodDelete, notePath(id), nil)
	if err != nil {
		return false, err
	}
	// drained so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return true, nil
}

func notePath(id NoteID) string {
	return constants.NotesPath + "/" + string(id)
}

// decodeResponse decodes a successful response body into T.
func decodeResponse[T any](resp *http.Response) (*T, error) {
	defer func() { _ = resp.Body.Close() }()

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}

// withCreatedAt encodes data as a JSON object with createdAt set to ts.
// Only the top level is copied; nested values are encoded as they are.
func withCreatedAt(data any, ts string) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("marshaling request: %w: %v", constants.ErrNotAnObject, err)
		}
	}

	stamp, err := json.Marshal(ts)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	fields[fieldCreatedAt] = stamp

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return body, nil
}
