// Package cmd implements the CLI application to track savings goals
// against a linked brokerage account.
package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/goaltrack"
	"github.com/etnz/goaltrack/advisor"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "dashboard")

	c.Register(&loginCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&demoCmd{}, "session")

	c.Register(&holdingsCmd{}, "portfolio")

	c.Register(&goalsCmd{}, "goals")
	c.Register(&addGoalCmd{}, "goals")
	c.Register(&deleteGoalCmd{}, "goals")
	c.Register(&assignCmd{}, "goals")
	c.Register(&unassignCmd{}, "goals")

	c.Register(&suggestCmd{}, "advisor")

	c.Register(&exportCmd{}, "backup")
	c.Register(&importCmd{}, "backup")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("data-file", "goaltrack.json", "Path to the goal tracker data file (JSON)")

// openTracker loads the tracker from the app data file.
func openTracker() (*goaltrack.Tracker, error) {
	return goaltrack.OpenTracker(goaltrack.NewFileStore(*dataFile))
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer is unavailable.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// newProvider maps a provider name to a configured advisor provider.
func newProvider(ctx context.Context, name string) (advisor.Provider, error) {
	switch name {
	case "gemini":
		return advisor.NewGemini(ctx)
	case "ollama":
		return advisor.NewOllama(), nil
	case "ollama-cloud":
		return advisor.NewOllamaCloud(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want gemini, ollama or ollama-cloud)", name)
	}
}
