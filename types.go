package notes

import (
	"github.com/notesapp/notes.go/pkg/constants"
)

// Data is a free-form note payload for CreateNote and UpdateNote.
// No field is validated on the client.
type Data map[string]any

// ListQuery holds the parameters of a ListNotes call.
//
// Zero values count as absent: Search and Sort are then left out of the
// query string, Page falls back to 1 and Limit to 10. Any other value,
// negative ones included, is sent unchecked.
type ListQuery struct {
	// Search is sent as the "title" parameter.
	Search string
	// Sort is sent as the "sortBy" parameter.
	Sort  string
	Page  int
	Limit int
}

func (q ListQuery) page() int {
	if q.Page == 0 {
		return constants.DefaultPage
	}
	return q.Page
}

func (q ListQuery) limit() int {
	if q.Limit == 0 {
		return constants.DefaultLimit
	}
	return q.Limit
}
