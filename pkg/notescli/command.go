package notescli

import (
	notes "github.com/notesapp/notes.go"
)

// Command is one operation requested on the command line.
//
// Parse produces a Command and Main dispatches it to the matching
// notes operation.
type Command interface {
	// Name returns the subcommand that selects the command.
	Name() string
}

// ListCommand fetches a page of notes.
//
//	notes list -search milk -sort title -page 2 -limit 20
type ListCommand struct {
	Query notes.ListQuery
}

func (c *ListCommand) Name() string {
	return "list"
}

// CreateCommand creates a note. The client adds createdAt.
//
//	notes create -title "Groceries" -content "milk, eggs"
//	notes create -data '{"title":"Groceries","tags":["home"]}'
type CreateCommand struct {
	Data notes.Data
}

func (c *CreateCommand) Name() string {
	return "create"
}

// UpdateCommand replaces the fields of an existing note.
//
//	notes update -id 42 -title "Groceries (done)"
type UpdateCommand struct {
	ID   notes.NoteID
	Data notes.Data
}

func (c *UpdateCommand) Name() string {
	return "update"
}

// DeleteCommand removes a note.
//
//	notes delete -id 42
type DeleteCommand struct {
	ID notes.NoteID
}

func (c *DeleteCommand) Name() string {
	return "delete"
}
