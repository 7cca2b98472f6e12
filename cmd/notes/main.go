package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/notesapp/notes.go/pkg/notescli"
)

func main() {
	// Interrupt cancels the in-flight request
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := notescli.Main(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatal(err)
	}
}
