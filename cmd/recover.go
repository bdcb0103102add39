package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moredecimal"
	"github.com/google/subcommands"
	"golang.org/x/text/language"
)

type recoverCmd struct{}

func (*recoverCmd) Name() string { return "recover" }
func (*recoverCmd) Synopsis() string {
	return "replay a decimal change left in the journal by an interrupted commit"
}
func (*recoverCmd) Usage() string {
	return `mdc -journal <file> recover

  Replays the decimal change recorded in the journal, then deletes the
  journal. Does nothing if there is no journal.
`
}

func (*recoverCmd) SetFlags(f *flag.FlagSet) {}

func (*recoverCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j := openJournal()
	if j == nil {
		fmt.Fprintf(os.Stderr, "Error: no journal, use -journal or %s\n", EnvJournal)
		return subcommands.ExitUsageError
	}
	entry, found, err := j.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !found {
		fmt.Fprintf(stdout, "Nothing to recover in %s.\n", j.Path())
		return subcommands.ExitSuccess
	}

	ws, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var transcript moredecimal.Transcript
	_, err = moredecimal.Recover(ws.book, entry, &transcript)
	for _, line := range transcript.Lines(language.English) {
		fmt.Fprintln(stdout, line)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ws.flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := j.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing journal: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
