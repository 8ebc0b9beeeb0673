package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goaltrack/kite"
	"github.com/etnz/goaltrack/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display account holdings and their assignments" }
func (*holdingsCmd) Usage() string {
	return `gt holdings

  Fetches the current holdings from the broker and displays them with the
  goal each one is assigned to.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (*holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := kite.LoadSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	holdings, err := kite.Holdings(ctx, session)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(holdings, tracker.Book()))
	return subcommands.ExitSuccess
}
