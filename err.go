package notes

import (
	"errors"
	"fmt"
)

// Error kinds, one per operation. They are returned when the server answers
// with a status outside 200-299.
var (
	ErrListFailed   = errors.New("failed to fetch notes")
	ErrCreateFailed = errors.New("failed to create note")
	ErrUpdateFailed = errors.New("failed to update note")
	ErrDeleteFailed = errors.New("failed to delete note")
)

// ResponseError carries the status and body of a failed response.
//
// It is only produced when the client has error detail enabled; otherwise
// the bare error kind is returned and the response is discarded.
// errors.Is(err, ErrCreateFailed) holds either way.
type ResponseError struct {
	Op         error
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Op, e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.Op
}

// IsClientError returns true for 4xx HTTP status codes.
func (e *ResponseError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
