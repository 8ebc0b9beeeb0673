package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type unassignCmd struct{}

func (*unassignCmd) Name() string     { return "unassign" }
func (*unassignCmd) Synopsis() string { return "return a holding to the general bucket" }
func (*unassignCmd) Usage() string {
	return `gt unassign <symbol>

  Removes the holding's assignment. Unassigning a holding that has none is
  a no-op.
`
}

func (*unassignCmd) SetFlags(f *flag.FlagSet) {}

func (*unassignCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one symbol")
		return subcommands.ExitUsageError
	}
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := tracker.Unassign(f.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Unassigned %s.\n", f.Arg(0))
	return subcommands.ExitSuccess
}
