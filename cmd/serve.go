package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goaltrack/advisor"
	"github.com/etnz/goaltrack/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr   string
	static string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the web dashboard" }
func (*serveCmd) Usage() string {
	return `gt serve [-addr <host:port>] [-static <dir>]

  Runs the dashboard server. The Kite Connect callback must be configured
  to point at http://<addr>/callback.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:3001", "Address to listen on.")
	f.StringVar(&c.static, "static", "", "Directory of dashboard assets to serve at /.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	srv, err := server.New(tracker)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	srv.StaticDir = c.static

	// Gemini needs an API key at startup; the Ollama providers are lazy.
	if gemini, err := advisor.NewGemini(ctx); err == nil {
		srv.Providers["gemini"] = gemini
	} else {
		fmt.Fprintf(os.Stderr, "warning: gemini provider unavailable: %v\n", err)
	}
	srv.Providers["ollama"] = advisor.NewOllama()
	srv.Providers["ollama-cloud"] = advisor.NewOllamaCloud()

	if err := srv.ListenAndServe(c.addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
