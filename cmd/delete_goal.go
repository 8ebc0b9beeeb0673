package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteGoalCmd struct{}

func (*deleteGoalCmd) Name() string     { return "delete-goal" }
func (*deleteGoalCmd) Synopsis() string { return "delete a goal and its assignments" }
func (*deleteGoalCmd) Usage() string {
	return `gt delete-goal <goal-id>

  Deletes the goal and every assignment pointing to it. The freed holdings
  fall back to the general bucket.
`
}

func (*deleteGoalCmd) SetFlags(f *flag.FlagSet) {}

func (*deleteGoalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one goal id")
		return subcommands.ExitUsageError
	}
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := tracker.DeleteGoal(f.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Goal deleted.")
	return subcommands.ExitSuccess
}
