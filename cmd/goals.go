package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goaltrack"
	"github.com/etnz/goaltrack/kite"
	"github.com/etnz/goaltrack/renderer"
	"github.com/google/subcommands"
)

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "display goal progress" }
func (*goalsCmd) Usage() string {
	return `gt goals

  Displays each goal with its current value, computed from the live
  holdings assigned to it, and its progress toward the target.
`
}

func (*goalsCmd) SetFlags(f *flag.FlagSet) {}

func (*goalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	book := tracker.Book()

	// Goals render with zero progress when there is no session.
	var holdings []goaltrack.Holding
	if session, err := kite.LoadSession(); err == nil && session.Authenticated() {
		holdings, err = kite.Holdings(ctx, session)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	progress := goaltrack.ComputeProgress(book.Goals(), book.Assignments(), holdings)
	printMarkdown(renderer.GoalsMarkdown(progress))
	return subcommands.ExitSuccess
}
