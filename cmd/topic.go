package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/etnz/moredecimal/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded documentation of mdc.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read about the book format, decimal changes and recovery" }
func (*topicCmd) Usage() string {
	return `mdc topic [-l] [<topic>...|'*']

  Print documentation topics. Without a topic, print the overview.

  book      the JSONL book file format
  decimals  how a change of decimal places is validated and committed
  journal   recovering from a commit that stopped half way

`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "list topic names, one per line")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	all, err := docs.GetAllTopics()
	if err != nil {
		log.Printf("could not list topics: %v", err)
		return subcommands.ExitFailure
	}
	if c.list {
		fmt.Fprintln(stdout, strings.Join(all, "\n"))
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	for _, t := range topics {
		if t != "*" && t != "readme" && !slices.Contains(all, t) {
			log.Printf("unknown topic %q, want one of %s", t, strings.Join(all, ", "))
			return subcommands.ExitUsageError
		}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		log.Printf("could not read topics: %v", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// predictTopics completes the topic names starting with prefix.
func predictTopics(prefix string) []string {
	all, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	var topics []string
	for _, t := range all {
		if strings.HasPrefix(t, prefix) {
			topics = append(topics, t)
		}
	}
	return topics
}
