package cmd

import (
	"context"
	"flag"
	"strconv"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type refundCmd struct {
	list bool
}

func (*refundCmd) Name() string     { return "refund" }
func (*refundCmd) Synopsis() string { return "refund an expense in full" }
func (*refundCmd) Usage() string {
	return `ms refund [-list] <transaction-id>

  Creates an income transaction for the full amount of the expense, on the
  same account, and marks the original as settled. Use -list to show the
  expenses currently eligible for a refund.
`
}

func (p *refundCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.list, "list", false, "List refundable expenses instead of refunding.")
}

func (p *refundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	if p.list {
		var txs []moneystream.Transaction
		for _, t := range a.session.Ledger().Transactions(moneystream.Refundable) {
			txs = append(txs, t)
		}
		printMarkdown(renderer.Transactions(txs))
		return subcommands.ExitSuccess
	}

	if f.NArg() != 1 {
		return errorf("expected exactly one transaction id")
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return errorf("invalid transaction id %q", f.Arg(0))
	}

	tx, err := a.session.Refund(id)
	if err != nil {
		return errorf("%v", err)
	}
	successf("recorded %s", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}
