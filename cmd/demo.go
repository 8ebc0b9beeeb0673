package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goaltrack/kite"
	"github.com/google/subcommands"
)

type demoCmd struct{}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "start a demo session with sample holdings" }
func (*demoCmd) Usage() string {
	return `gt demo

  Starts a demo session backed by sample holdings, no broker credentials
  needed. When the data file has no goals yet, two sample goals are added.
`
}

func (*demoCmd) SetFlags(f *flag.FlagSet) {}

func (*demoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := kite.DemoSession().Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(tracker.Book().Goals()) == 0 {
		for _, g := range kite.DemoGoals() {
			if err := tracker.AddGoal(g); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
		}
		fmt.Println("Added sample goals.")
	}
	fmt.Println("Demo session started.")
	return subcommands.ExitSuccess
}
