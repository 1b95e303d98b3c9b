package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type recomputeCmd struct {
	fix bool
}

func (*recomputeCmd) Name() string { return "recompute" }
func (*recomputeCmd) Synopsis() string {
	return "compare account balances with the transaction history"
}
func (*recomputeCmd) Usage() string {
	return `ms recompute [-fix]

  Derives each account's balance from its full transaction history and
  reports the accounts whose stored balance drifts from it, typically
  after amount edits. With -fix, the derived balances are adopted. The
  derivation cannot see backdated recordings or opening balances, so
  review the report before fixing.
`
}

func (p *recomputeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.fix, "fix", false, "Adopt the derived balances.")
}

func (p *recomputeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	if !p.fix {
		printMarkdown(renderer.Drifts(a.session.Ledger().RecomputeBalances()))
		return subcommands.ExitSuccess
	}

	drifts, err := a.session.AdoptDerivedBalances()
	if err != nil {
		return errorf("%v", err)
	}
	if len(drifts) == 0 {
		successf("balances already match the transaction history")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.Drifts(drifts))
	successf("adopted derived balances for %d account(s)", len(drifts))
	return subcommands.ExitSuccess
}
