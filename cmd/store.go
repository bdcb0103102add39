package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moredecimal"
	"github.com/etnz/moredecimal/sqlstore"
	"github.com/google/subcommands"
)

// openStore opens the database named by -store.
func openStore() (*sqlstore.Store, error) {
	if *storeDSN == "" {
		return nil, fmt.Errorf("no database, use -store or %s", EnvStore)
	}
	return sqlstore.Open(*storeDSN)
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "copy the book file into the SQLite store" }
func (*importCmd) Usage() string {
	return `mdc -store <db> import

  Replaces the content of the SQLite store with the book file.
`
}

func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, err := moredecimal.LoadBook(*bookFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Import(ctx, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", *bookFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Imported %s into %s.\n", *bookFile, *storeDSN)
	return subcommands.ExitSuccess
}

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the SQLite store to the book file" }
func (*exportCmd) Usage() string {
	return `mdc -store <db> export

  Writes the content of the SQLite store to the book file, in canonical form.
`
}

func (*exportCmd) SetFlags(f *flag.FlagSet) {}

func (*exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, err := s.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := moredecimal.SaveBook(*bookFile, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Exported %s into %s.\n", *storeDSN, *bookFile)
	return subcommands.ExitSuccess
}
