package notescli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	notes "github.com/notesapp/notes.go"
	"github.com/notesapp/notes.go/pkg/logger"
)

// Main is the entry point of the notes command.
//
// It parses args, builds a client and runs one operation against the notes
// service, writing the JSON result to stdout. Logs and usage go to stderr.
// Main can be called from tests without building the binary.
//
// # Command Line Usage
//
//	notes list -search milk -sort title -page 1 -limit 20
//	notes create -title Groceries -content "milk, eggs"
//	notes update -id 42 -data '{"title":"Groceries (done)"}'
//	notes delete -id 42
//
// # Environment Variables
//
//	NOTES_BASE_URL    - notes service root, overridden by -base-url
//	NOTES_TIMEOUT     - per-request timeout, overridden by -timeout
//	NOTES_LOG_LEVEL   - zerolog level name (default: disabled)
//	NOTES_LOG_FORMAT  - json or console (default: json)
//	NOTES_LOG_FILE    - log to this file instead of stderr
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, config, err := Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}

	client, closeLog, err := New(config, stderr)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer closeLog()

	out, err := Execute(ctx, client, cmd)
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Name(), err)
	}

	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

// New builds a client from config. With config.Verbose every request is
// logged to stderr in console format, regardless of NOTES_LOG_LEVEL.
// The returned func releases the log file, if one was opened.
func New(config *Config, stderr io.Writer) (*notes.Client, func(), error) {
	client, err := notes.FromConfig(config.Client)
	if err != nil {
		return nil, nil, err
	}
	client.SetErrorDetail(config.Detail)

	closeLog := func() {}
	if config.Verbose {
		logData, err := logger.New().
			FromBuffer(stderr).
			WithLevel("debug").
			WithFormat(logger.FormatConsole).
			Make()
		if err != nil {
			return nil, nil, err
		}
		client.SetLogger(logData)
		closeLog = func() { _ = logData.Close() }
	}

	return client, closeLog, nil
}

// Execute runs cmd and returns its result as indented JSON.
// The server's response is printed as received; delete prints true.
func Execute(ctx context.Context, client *notes.Client, cmd Command) ([]byte, error) {
	var (
		res *json.RawMessage
		err error
	)

	switch c := cmd.(type) {
	case *ListCommand:
		res, err = notes.List[json.RawMessage](ctx, client, c.Query)
	case *CreateCommand:
		res, err = notes.Create[json.RawMessage](ctx, client, c.Data)
	case *UpdateCommand:
		res, err = notes.Update[json.RawMessage](ctx, client, c.ID, c.Data)
	case *DeleteCommand:
		ok, err := client.DeleteNote(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ok)
	default:
		return nil, fmt.Errorf("unknown command type: %T", cmd)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, *res, "", "  "); err != nil {
		return nil, fmt.Errorf("formatting response: %w", err)
	}
	return buf.Bytes(), nil
}
