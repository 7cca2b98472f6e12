package notescli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	notes "github.com/notesapp/notes.go"
)

const usage = `Usage: notes [flags] <command> [command flags]

Commands:
  list     List notes
  create   Create a note
  update   Update a note
  delete   Delete a note

Flags:
  -base-url URL   notes service root (default: $NOTES_BASE_URL)
  -timeout D      per-request timeout, e.g. 5s (default: $NOTES_TIMEOUT)
  -v              log requests to stderr
  -detail         include status and body in errors

Examples:
  notes list -search milk -sort title -page 1 -limit 20
  notes create -title Groceries -content "milk, eggs"
  notes create -data '{"title":"Groceries","tags":["home"]}'
  notes update -id 42 -title "Groceries (done)"
  notes delete -id 42`

// ErrUsage is returned when the command line cannot be understood.
var ErrUsage = errors.New("invalid usage")

// Config is the client configuration after environment and flags are merged.
type Config struct {
	Client *notes.Config
	// Verbose logs every request to stderr at debug level.
	Verbose bool
	// Detail enables notes.Client.SetErrorDetail.
	Detail bool
}

// Parse parses command line arguments into the command to execute and the
// configuration shared by all commands.
//
// Settings are read from the environment first (see notes.ParseConfig);
// global flags override them. Flag parse errors are written to output.
func Parse(args []string, output io.Writer) (Command, *Config, error) {
	clientConfig, err := notes.ParseConfig()
	if err != nil {
		return nil, nil, err
	}

	flagSet := flag.NewFlagSet("notes", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() { fmt.Fprintln(output, usage) }

	var (
		baseURL = flagSet.String("base-url", clientConfig.BaseURL, "notes service root URL")
		timeout = flagSet.Duration("timeout", clientConfig.Timeout, "per-request timeout")
		verbose = flagSet.Bool("v", false, "log requests to stderr")
		detail  = flagSet.Bool("detail", false, "include status and body in errors")
	)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	clientConfig.BaseURL = *baseURL
	clientConfig.Timeout = *timeout
	config := &Config{
		Client:  clientConfig,
		Verbose: *verbose,
		Detail:  *detail,
	}

	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, fmt.Errorf("%w: subcommand required\n\n%s", ErrUsage, usage)
	}

	cmd, err := parseCommand(remainingArgs[0], remainingArgs[1:], output)
	if err != nil {
		return nil, nil, err
	}
	return cmd, config, nil
}

func parseCommand(name string, args []string, output io.Writer) (Command, error) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)

	switch name {
	case "list":
		cmd := &ListCommand{}
		flagSet.StringVar(&cmd.Query.Search, "search", "", "case-insensitive title filter")
		flagSet.StringVar(&cmd.Query.Sort, "sort", "", "field to sort by")
		flagSet.IntVar(&cmd.Query.Page, "page", 1, "page number")
		flagSet.IntVar(&cmd.Query.Limit, "limit", 10, "notes per page")
		if err := parseArgs(flagSet, args); err != nil {
			return nil, err
		}
		return cmd, nil

	case "create":
		payload := payloadFlags(flagSet)
		if err := parseArgs(flagSet, args); err != nil {
			return nil, err
		}
		data, err := payload.build()
		if err != nil {
			return nil, err
		}
		return &CreateCommand{Data: data}, nil

	case "update":
		id := flagSet.String("id", "", "note id (required)")
		payload := payloadFlags(flagSet)
		if err := parseArgs(flagSet, args); err != nil {
			return nil, err
		}
		if *id == "" {
			return nil, fmt.Errorf("%w: update requires -id", ErrUsage)
		}
		data, err := payload.build()
		if err != nil {
			return nil, err
		}
		return &UpdateCommand{ID: notes.NoteID(*id), Data: data}, nil

	case "delete":
		id := flagSet.String("id", "", "note id (required)")
		if err := parseArgs(flagSet, args); err != nil {
			return nil, err
		}
		if *id == "" {
			return nil, fmt.Errorf("%w: delete requires -id", ErrUsage)
		}
		return &DeleteCommand{ID: notes.NoteID(*id)}, nil
	}

	return nil, fmt.Errorf("%w: unknown command: %s\n\nValid commands: list, create, update, delete", ErrUsage, name)
}

func parseArgs(flagSet *flag.FlagSet, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments for %s: %v", ErrUsage, flagSet.Name(), flagSet.Args())
	}
	return nil
}

// payload collects the flags that make up a note body.
type payload struct {
	flagSet *flag.FlagSet
	data    *string
	title   *string
	content *string
}

func payloadFlags(flagSet *flag.FlagSet) *payload {
	return &payload{
		flagSet: flagSet,
		data:    flagSet.String("data", "", "note fields as a JSON object"),
		title:   flagSet.String("title", "", "note title"),
		content: flagSet.String("content", "", "note content"),
	}
}

// build merges -data with -title and -content. Explicitly set
// -title and -content win over the same keys in -data.
func (p *payload) build() (notes.Data, error) {
	data := notes.Data{}
	if *p.data != "" {
		if err := json.Unmarshal([]byte(*p.data), &data); err != nil {
			return nil, fmt.Errorf("%w: -data must be a JSON object: %v", ErrUsage, err)
		}
		if data == nil {
			return nil, fmt.Errorf("%w: -data must be a JSON object", ErrUsage)
		}
	}

	p.flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			data["title"] = *p.title
		case "content":
			data["content"] = *p.content
		}
	})
	return data, nil
}
