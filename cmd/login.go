package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goaltrack/kite"
	"github.com/google/subcommands"
)

type loginCmd struct {
	requestToken string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authenticate with the Kite Connect API" }
func (*loginCmd) Usage() string {
	return `gt login [-token <request_token>]

  Without a token, prints the Kite Connect login URL to visit. After the
  login redirect, run again with the request_token from the redirect URL
  to store the session.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.requestToken, "token", "", "Request token from the login redirect.")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.requestToken == "" {
		u, err := kite.LoginURL()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println("Visit the login URL, then run 'gt login -token <request_token>':")
		fmt.Println(u)
		return subcommands.ExitSuccess
	}

	session, err := kite.GenerateSession(ctx, c.requestToken)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := session.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Session stored.")
	return subcommands.ExitSuccess
}
