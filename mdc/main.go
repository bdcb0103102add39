// Command mdc changes the number of decimal places of securities in a book.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/moredecimal/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests and exits, if any.
	cmd.Completion().Complete("mdc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()

	// Unknown subcommands may be provided by an mdc-<subcommand> binary.
	if sub := flag.Arg(0); sub != "" && !isRegistered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}
