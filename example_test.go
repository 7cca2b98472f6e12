package notes_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	notes "github.com/notesapp/notes.go"
	"github.com/notesapp/notes.go/internal/fakenotes"
)

func ExampleClient_CreateNote() {
	server := fakenotes.NewServer()
	server.Start()
	defer server.Close()

	client := notes.NewClient(server.URL()).SetClock(func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC)
	})

	note, err := client.CreateNote(context.Background(), notes.Data{"title": "Groceries"})
	if err != nil {
		panic(err)
	}
	fmt.Println(note.String("title"), note.CreatedAt)

	// Output:
	// Groceries 2024-01-02T03:04:05.006Z
}

func ExampleList() {
	server := fakenotes.NewServer()
	server.Seed(
		map[string]any{"id": 1, "title": "Buy milk"},
		map[string]any{"id": 2, "title": "Call mom"},
		map[string]any{"id": 3, "title": "Milkshake recipe"},
	)
	server.Start()
	defer server.Close()

	client := notes.NewClient(server.URL())

	found, err := notes.List[[]notes.Note](context.Background(), client, notes.ListQuery{Search: "milk", Sort: "title"})
	if err != nil {
		panic(err)
	}
	for _, note := range *found {
		fmt.Println(note.ID, note.String("title"))
	}

	// Output:
	// 1 Buy milk
	// 3 Milkshake recipe
}

func ExampleClient_DeleteNote() {
	server := fakenotes.NewServer()
	server.Start()
	defer server.Close()

	client := notes.NewClient(server.URL())

	_, err := client.DeleteNote(context.Background(), "missing")
	fmt.Println(errors.Is(err, notes.ErrDeleteFailed), err)

	// Output:
	// true failed to delete note
}
