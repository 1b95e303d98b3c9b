package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/moneystream/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion answers shell completion requests and returns immediately in a
// normal run.
func completion() {
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"add":       {},
			"transfer":  {},
			"refund":    {},
			"reimburse": {},
			"edit":      {},
			"tx":        {},
			"summary":   {},
			"accounts":  {},
			"account":   {},
			"category":  {},
			"undo":      {},
			"recompute": {},
		},
	}
	c.Complete("ms")
}
