package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goaltrack/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `gt topic [<topic>...]

  Shows the documentation for the given topics, or the readme and the
  topic index when none is given. 'gt topic "*"' shows everything.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := topicText(f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// topicText resolves the requested topics. With no arguments it returns
// the readme followed by the topic index; an unknown topic fails with the
// available topics listed so the user does not have to guess.
func topicText(topics []string) (string, error) {
	all, err := docs.AllTopics()
	if err != nil {
		return "", err
	}

	if len(topics) == 0 {
		readme, err := docs.GetTopic("readme")
		if err != nil {
			return "", err
		}
		return readme + "\nAvailable topics: " + strings.Join(all, ", ") + "\n", nil
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return "", fmt.Errorf("%w (available topics: %s)", err, strings.Join(all, ", "))
	}
	return doc, nil
}
