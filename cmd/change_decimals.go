package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moredecimal"
	"github.com/etnz/moredecimal/renderer"
	"github.com/google/subcommands"
	"golang.org/x/text/language"
)

type changeDecimalsCmd struct {
	ticker   string
	decimals int
	dryRun   bool
}

func (*changeDecimalsCmd) Name() string { return "change-decimals" }
func (*changeDecimalsCmd) Synopsis() string {
	return "change the number of decimal places of a security"
}
func (*changeDecimalsCmd) Usage() string {
	return `mdc change-decimals -s <ticker> -d <decimals> [-n]

  Rescales every quantity of the security to the new number of decimal
  places. The change is first validated against every transaction and
  balance of every account holding the security: if any of them would lose a
  digit, nothing is changed and every failure is listed.

Usage Examples:
# Record ACME quantities with 4 decimal places.
$ mdc change-decimals -s ACME -d 4

# Check that ACME quantities fit in whole units, without changing anything.
$ mdc change-decimals -s ACME -d 0 -n

`
}

func (c *changeDecimalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "Ticker of the security to change")
	f.IntVar(&c.decimals, "d", -1, "New number of decimal places")
	f.BoolVar(&c.dryRun, "n", false, "Validate and report the change without committing it")
}

func (c *changeDecimalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.decimals < 0 {
		fmt.Fprintln(os.Stderr, "Error: -s and a non negative -d are required")
		return subcommands.ExitUsageError
	}

	ws, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	sec := ws.book.Security(c.ticker)
	if sec == nil {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", moredecimal.ErrUnknownSecurity, c.ticker)
		return subcommands.ExitFailure
	}

	var opts []moredecimal.Option
	if j := openJournal(); j != nil {
		opts = append(opts, moredecimal.WithJournal(j))
	}
	var transcript moredecimal.Transcript
	session := moredecimal.NewSession(ws.book, &transcript, opts...)

	report := &renderer.Change{Security: sec.Name(), Ticker: sec.Ticker(), From: sec.Decimals(), To: c.decimals}
	outcome, err := session.BeginChange(sec, c.decimals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if change, ok := session.Pending(); ok {
		report = renderer.NewChange(change)
	}
	report.DryRun = c.dryRun

	status := subcommands.ExitSuccess
	switch outcome {
	case moredecimal.Rejected:
		status = subcommands.ExitFailure
	case moredecimal.Ready:
		if c.dryRun {
			session.Discard()
			break
		}
		if _, err := session.Commit(); err != nil {
			status = subcommands.ExitFailure
			break
		}
		if err := ws.flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving book: %v\n", err)
			status = subcommands.ExitFailure
		}
	}

	report.AddTranscript(&transcript, language.English)
	printMarkdown(renderer.RenderChange(report))
	return status
}
