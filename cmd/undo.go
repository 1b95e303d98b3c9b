package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "undo the last operation of this session" }
func (*undoCmd) Usage() string {
	return `ms undo

  Restores the collections touched by the last operation, including the
  account balances it moved. Only the single most recent operation can
  be undone; a second undo fails until another operation runs.
`
}

func (*undoCmd) SetFlags(*flag.FlagSet) {}

func (p *undoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	if err := a.session.Undo(); err != nil {
		return errorf("%v", err)
	}
	successf("undone")
	return subcommands.ExitSuccess
}
