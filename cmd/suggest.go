package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/goaltrack/advisor"
	"github.com/etnz/goaltrack/kite"
	"github.com/etnz/goaltrack/renderer"
	"github.com/google/subcommands"
)

type suggestCmd struct {
	provider string
	all      bool
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "ask the advisor to allocate holdings to goals" }
func (*suggestCmd) Usage() string {
	return `gt suggest [-provider gemini|ollama|ollama-cloud] [-all]

  Sends the current holdings and goals to the advisor and reviews its
  suggestions one by one. Each suggestion can be accepted (committed as an
  assignment) or skipped. With -all, every resolvable suggestion is
  accepted without review.
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", "gemini", "Advisor provider (gemini, ollama, ollama-cloud).")
	f.BoolVar(&c.all, "all", false, "Accept every resolvable suggestion without review.")
}

func (c *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	provider, err := newProvider(ctx, c.provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	resp, err := advisor.Suggest(ctx, provider, holdings, tracker.Book().Goals())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if resp.Summary != "" {
		if err := tracker.SetPersonality(resp.Summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	rec := advisor.NewReconciler(tracker, tracker, resp.Suggestions)
	rec.ReportDropped = true
	printMarkdown(renderer.SuggestionsMarkdown(resp, rec))

	if c.all {
		accepted, failed := rec.AcceptAll()
		fmt.Printf("Accepted %d suggestion(s).\n", accepted)
		for _, s := range failed {
			fmt.Fprintf(os.Stderr, "could not assign %s\n", s.Stock)
		}
		if len(failed) > 0 {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	return c.review(rec)
}

// review walks the pending suggestions one by one on the terminal.
func (c *suggestCmd) review(rec *advisor.Reconciler) subcommands.ExitStatus {
	r := bufio.NewReader(os.Stdin)
	for _, s := range rec.Pending() {
		goal, _ := rec.Resolve(s)
		fmt.Printf("\n%s -> %s (%s)\n  %s\n", s.Stock, goal.Name, s.Confidence, s.Reason)
		fmt.Print("accept? [y/N/q] ")

		input, err := r.ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
			if err := rec.Accept(s); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
			fmt.Printf("Assigned %s to %s.\n", s.Stock, goal.Name)
		case "q", "quit":
			return subcommands.ExitSuccess
		default:
			rec.Skip(s)
		}
	}
	return subcommands.ExitSuccess
}
