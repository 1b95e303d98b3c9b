package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type reimburseCmd struct {
	list      bool
	account   string
	amounts   overrideFlag
	merchants overrideFlag
}

// overrideFlag collects repeated "id=value" flag values.
type overrideFlag map[int]string

func (o overrideFlag) String() string { return "" }

func (o overrideFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want id=value, got %q", s)
	}
	id, err := strconv.Atoi(key)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", key)
	}
	o[id] = value
	return nil
}

func (*reimburseCmd) Name() string     { return "reimburse" }
func (*reimburseCmd) Synopsis() string { return "settle a batch of expenses as reimbursed" }
func (*reimburseCmd) Usage() string {
	return `ms reimburse [-list] -a <account> [-amount id=value]... [-merchant id=name]... <transaction-id>...

  Creates one income transaction per selected expense, credited to the
  reimbursement account, and marks the originals as settled. The amount
  and merchant of each row default to the original's and can be
  overridden per id; an amount below the original is a partial
  reimbursement. Use -list to show the expenses currently eligible.
`
}

func (p *reimburseCmd) SetFlags(f *flag.FlagSet) {
	p.amounts = make(overrideFlag)
	p.merchants = make(overrideFlag)
	f.BoolVar(&p.list, "list", false, "List reimbursable expenses instead of reimbursing.")
	f.StringVar(&p.account, "a", "", "Account receiving the reimbursement.")
	f.Var(p.amounts, "amount", "Override the reimbursed amount for one id (id=value).")
	f.Var(p.merchants, "merchant", "Override the merchant for one id (id=name).")
}

func (p *reimburseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	eligible := a.cfg.ReimbursableCategories
	if p.list {
		var txs []moneystream.Transaction
		for _, t := range a.session.Ledger().Transactions(moneystream.Reimbursable(eligible)) {
			txs = append(txs, t)
		}
		printMarkdown(renderer.Transactions(txs))
		return subcommands.ExitSuccess
	}

	if f.NArg() == 0 {
		return errorf("expected at least one transaction id")
	}
	req := moneystream.ReimburseRequest{
		Account:    p.account,
		Categories: eligible,
		Amounts:    make(map[int]moneystream.Money, len(p.amounts)),
		Merchants:  make(map[int]string, len(p.merchants)),
	}
	for _, arg := range f.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return errorf("invalid transaction id %q", arg)
		}
		req.IDs = append(req.IDs, id)
	}
	for id, value := range p.amounts {
		amount, err := moneystream.ParseMoney(value)
		if err != nil {
			return errorf("invalid amount override for %d: %v", id, err)
		}
		req.Amounts[id] = amount
	}
	for id, name := range p.merchants {
		req.Merchants[id] = name
	}

	rows, err := a.session.Reimburse(req)
	if err != nil {
		return errorf("%v", err)
	}
	for _, tx := range rows {
		successf("recorded %s", renderer.Transaction(tx))
	}
	return subcommands.ExitSuccess
}
