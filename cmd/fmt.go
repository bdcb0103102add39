package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moredecimal"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	output string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the book file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mdc fmt [-o <file>]

  Validates and formats the book file: securities by ticker, accounts depth
  first, then transactions by date, each in a canonical JSONL form. The book
  is formatted in-place unless -o is given.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the formatted book to this file instead")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := moredecimal.LoadBook(*bookFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	output := c.output
	if output == "" {
		output = *bookFile
	}
	if err := moredecimal.SaveBook(output, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %s.\n", output)
	return subcommands.ExitSuccess
}
