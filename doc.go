// Package notes is a client for a remote "notes" REST resource.
//
// # Operations
//
// [Client] wraps four endpoints, each in a single HTTP round trip:
//
//	GET    /notes?title=&sortBy=&page=&limit=   ListNotes
//	POST   /notes                               CreateNote
//	PUT    /notes/{id}                          UpdateNote
//	DELETE /notes/{id}                          DeleteNote
//
// Requests are never retried, cached, batched or deduplicated. Concurrent
// calls are independent of each other.
//
// The generic functions [List], [Create], [Update] and [Delete] do the same
// work but decode responses into a caller-chosen type.
//
// # Payloads
//
// Notes are owned by the server. [Note] models the identifier and the
// createdAt timestamp and keeps every other property in [Note.Fields].
// CreateNote adds createdAt to the payload; UpdateNote sends the payload
// as given.
//
// # Errors
//
// A response outside 200-299 fails with the error kind of the operation:
// [ErrListFailed], [ErrCreateFailed], [ErrUpdateFailed] or [ErrDeleteFailed].
// The status code and body are dropped unless [Client.SetErrorDetail] is
// enabled, in which case a [*ResponseError] is returned instead.
// Errors raised by the HTTP transport (DNS, refused connections, timeouts)
// are returned untranslated.
//
// # Configuration
//
// Pass the base URL to [NewClient], or read it from NOTES_BASE_URL with
// [LoadConfig] and [FromConfig]. [Default] builds a process-wide client from
// the environment on first use.
package notes
