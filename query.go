package notes

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/notesapp/notes.go/pkg/constants"
)

// Encode renders the query string for GET /notes.
//
// Keys keep a fixed order (title, sortBy, page, limit) rather than the
// alphabetical order url.Values would produce.
func (q ListQuery) Encode() string {
	var sb strings.Builder

	add := func(key, value string) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(value))
	}

	if q.Search != "" {
		add(constants.QueryTitle, q.Search)
	}
	if q.Sort != "" {
		add(constants.QuerySortBy, q.Sort)
	}
	add(constants.QueryPage, strconv.Itoa(q.page()))
	add(constants.QueryLimit, strconv.Itoa(q.limit()))

	return sb.String()
}
