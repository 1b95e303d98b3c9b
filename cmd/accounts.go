package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "account balances grouped by account type" }
func (*accountsCmd) Usage() string {
	return `ms accounts

  Shows every account type with the accounts it holds and the total
  balance per type.
`
}

func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (p *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()
	ledger := a.session.Ledger()

	printMarkdown(renderer.AccountOverview(ledger.BalancesByType(), ledger.AccountRows()))
	return subcommands.ExitSuccess
}
