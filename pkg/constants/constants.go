package constants

import "time"

// Environment variables read by the config loader.
const (
	EnvBaseURL   = "NOTES_BASE_URL"
	EnvTimeout   = "NOTES_TIMEOUT"
	EnvLogLevel  = "NOTES_LOG_LEVEL"
	EnvLogFormat = "NOTES_LOG_FORMAT"
)

const (
	NotesPath = "/notes"

	ContentTypeJSON = "application/json"

	// TimestampLayout renders UTC times the way JavaScript's toISOString does.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	DefaultPage  = 1
	DefaultLimit = 10

	// DefaultHTTPTimeout of zero means requests wait as long as the server takes.
	DefaultHTTPTimeout time.Duration = 0
)

// Query string keys understood by the notes resource.
const (
	QueryTitle  = "title"
	QuerySortBy = "sortBy"
	QueryPage   = "page"
	QueryLimit  = "limit"
)

var (
	HTTPScheme       = "http"
	HTTPSecureScheme = "https"
)
