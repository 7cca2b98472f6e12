package constants

import "errors"

var (
	ErrNoBaseURL     = errors.New("base url not set")
	ErrInvalidScheme = errors.New("base url scheme must be http or https")
	ErrNotAnObject   = errors.New("payload must encode to a JSON object")
)
