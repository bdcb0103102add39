package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moredecimal/renderer"
	"github.com/google/subcommands"
)

type securitiesCmd struct{}

func (*securitiesCmd) Name() string     { return "securities" }
func (*securitiesCmd) Synopsis() string { return "list securities with their decimal places" }
func (*securitiesCmd) Usage() string {
	return `mdc securities

  Lists every security of the book, the number of decimal places of its
  quantities, and the investment accounts that hold it.
`
}

func (*securitiesCmd) SetFlags(f *flag.FlagSet) {}

func (*securitiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ws, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSecurities(renderer.NewSecurities(ws.book)))
	return subcommands.ExitSuccess
}
