package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type assignCmd struct{}

func (*assignCmd) Name() string     { return "assign" }
func (*assignCmd) Synopsis() string { return "assign a holding to a goal" }
func (*assignCmd) Usage() string {
	return `gt assign <symbol> <goal-id>

  Routes a holding to a goal. A holding belongs to at most one goal, a new
  assignment replaces the previous one.
`
}

func (*assignCmd) SetFlags(f *flag.FlagSet) {}

func (*assignCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected <symbol> <goal-id>")
		return subcommands.ExitUsageError
	}
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := tracker.Assign(f.Arg(0), f.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Assigned %s.\n", f.Arg(0))
	return subcommands.ExitSuccess
}
