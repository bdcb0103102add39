// Package cmd implements the mdc command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/moredecimal"
	"github.com/etnz/moredecimal/sqlstore"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&securitiesCmd{}, "securities")
	c.Register(&changeDecimalsCmd{}, "securities")
	c.Register(&recoverCmd{}, "securities")

	c.Register(&fmtCmd{}, "book")
	c.Register(&importCmd{}, "book")
	c.Register(&exportCmd{}, "book")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	bookFile    = flag.String("book", envOr(EnvBookFile, "book.jsonl"), "Path to the book file (JSONL format)")
	storeDSN    = flag.String("store", os.Getenv(EnvStore), "Path to a SQLite database holding the book. When set, -book is only used by import and export")
	journalFile = flag.String("journal", os.Getenv(EnvJournal), "Path to the write-ahead journal of decimal changes. No journal when empty")
	Verbose     = flag.Bool("v", os.Getenv(EnvVerbose) == "true", "Print log messages")
	raw         = flag.Bool("raw", false, "Print reports as plain markdown")
)

// stdout receives the reports printed by commands.
var stdout io.Writer = os.Stdout

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupLogging discards log messages unless -v is set. It must be called
// after flags are parsed.
func SetupLogging() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// workspace is an open book and the way to persist it.
type workspace struct {
	book  *moredecimal.Book
	flush func() error
}

// openWorkspace loads the book from the SQLite store if -store is set, or
// from the book file.
func openWorkspace(ctx context.Context) (*workspace, error) {
	if *storeDSN != "" {
		s, err := sqlstore.Open(*storeDSN)
		if err != nil {
			return nil, err
		}
		b, err := s.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not load book from %q: %w", *storeDSN, err)
		}
		// Rows are written as they are synced.
		return &workspace{book: b, flush: func() error { return nil }}, nil
	}
	b, fs, err := moredecimal.OpenFileStore(*bookFile)
	if err != nil {
		return nil, err
	}
	return &workspace{book: b, flush: fs.Flush}, nil
}

// openJournal returns the journal configured with -journal, or nil.
func openJournal() *moredecimal.FileJournal {
	if *journalFile == "" {
		return nil
	}
	return moredecimal.NewFileJournal(*journalFile)
}

// printMarkdown renders md for the terminal, unless -raw is set.
func printMarkdown(md string) {
	if !*raw {
		out, err := glamour.RenderWithEnvironmentConfig(md)
		if err == nil {
			md = out
		} else {
			log.Printf("could not render markdown: %v", err)
		}
	}
	fmt.Fprint(stdout, md)
}
