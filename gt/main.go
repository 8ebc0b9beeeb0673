package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/goaltrack/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// completion exits the process when invoked by the shell.
	completion().Complete("gt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command tree for shell completion.
func completion() *complete.Command {
	providers := predict.Set{"gemini", "ollama", "ollama-cloud"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"data-file": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"serve": {Flags: map[string]complete.Predictor{
				"addr":   predict.Something,
				"static": predict.Dirs("*"),
			}},
			"login": {Flags: map[string]complete.Predictor{
				"token": predict.Something,
			}},
			"logout": {},
			"demo":   {},

			"holdings": {},

			"goals": {},
			"add-goal": {Flags: map[string]complete.Predictor{
				"name":     predict.Something,
				"target":   predict.Something,
				"deadline": predict.Something,
				"color":    predict.Something,
			}},
			"delete-goal": {},
			"assign":      {},
			"unassign":    {},

			"suggest": {Flags: map[string]complete.Predictor{
				"provider": providers,
				"all":      predict.Nothing,
			}},

			"export": {Flags: map[string]complete.Predictor{
				"o": predict.Files("*.json"),
			}},
			"import": {Args: predict.Files("*.json")},

			"topic": {},
		},
	}
}
