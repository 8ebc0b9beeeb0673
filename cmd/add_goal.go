package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goaltrack"
	"github.com/google/subcommands"
)

type addGoalCmd struct {
	name     string
	target   float64
	deadline string
	color    string
}

func (*addGoalCmd) Name() string     { return "add-goal" }
func (*addGoalCmd) Synopsis() string { return "create a savings goal" }
func (*addGoalCmd) Usage() string {
	return `gt add-goal -name <name> -target <amount> [-deadline <YYYY-MM-DD>] [-color <hex>]

Usage Examples:
$ gt add-goal -name "Dream Home" -target 5000000 -deadline 2030-12-31
`
}

func (c *addGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Goal name.")
	f.Float64Var(&c.target, "target", 0, "Target amount.")
	f.StringVar(&c.deadline, "deadline", "", "Optional deadline (YYYY-MM-DD).")
	f.StringVar(&c.color, "color", "", "Optional display color.")
}

func (c *addGoalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	goal, err := goaltrack.NewGoal(c.name, goaltrack.M(c.target, goaltrack.DefaultCurrency), c.deadline, c.color)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := tracker.AddGoal(goal); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created goal %q (%s)\n", goal.Name, goal.ID)
	return subcommands.ExitSuccess
}
