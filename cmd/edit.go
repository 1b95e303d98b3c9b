package cmd

import (
	"context"
	"flag"
	"strconv"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type editCmd struct {
	date        string
	typ         string
	category    string
	subcategory string
	amount      string
	account     string
	merchant    string
	item        string
	remarks     string
	settled     string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit fields of an existing transaction" }
func (*editCmd) Usage() string {
	return `ms edit [-d <date>] [-t <type>] [-c <category>] [-sc <subcategory>] [-amount <value>] [-a <account>] [-m <merchant>] [-i <item>] [-r <remarks>] [-settled 是|否] <transaction-id>

  Overwrites only the given fields. Balances are not recomputed: use
  "ms recompute" after editing amounts or moving between accounts.
`
}

func (p *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "New transaction date.")
	f.StringVar(&p.typ, "t", "", "New transaction type (支出 or 收入).")
	f.StringVar(&p.category, "c", "", "New category name.")
	f.StringVar(&p.subcategory, "sc", "", "New subcategory name.")
	f.StringVar(&p.amount, "amount", "", "New amount.")
	f.StringVar(&p.account, "a", "", "New account name.")
	f.StringVar(&p.merchant, "m", "", "New merchant name.")
	f.StringVar(&p.item, "i", "", "New item description.")
	f.StringVar(&p.remarks, "r", "", "New remarks.")
	f.StringVar(&p.settled, "settled", "", "New settled flag (是 or 否).")
}

func (p *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one transaction id")
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return errorf("invalid transaction id %q", f.Arg(0))
	}

	edit := moneystream.TransactionEdit{ID: id}
	if p.date != "" {
		day, err := moneystream.ParseDate(p.date)
		if err != nil {
			return errorf("invalid date: %v", err)
		}
		edit.Date = &day
	}
	if p.typ != "" {
		typ, err := moneystream.ParseTransactionType(p.typ)
		if err != nil {
			return errorf("%v", err)
		}
		edit.Type = &typ
	}
	if p.category != "" {
		edit.Category = &p.category
	}
	if p.subcategory != "" {
		edit.Subcategory = &p.subcategory
	}
	if p.amount != "" {
		amount, err := moneystream.ParseMoney(p.amount)
		if err != nil {
			return errorf("invalid amount: %v", err)
		}
		edit.Amount = &amount
	}
	if p.account != "" {
		edit.Account = &p.account
	}
	if p.merchant != "" {
		edit.Merchant = &p.merchant
	}
	if p.item != "" {
		edit.Item = &p.item
	}
	if p.remarks != "" {
		edit.Remarks = &p.remarks
	}
	if p.settled != "" {
		settled := p.settled == "是"
		if !settled && p.settled != "否" {
			return errorf("invalid settled flag %q, want 是 or 否", p.settled)
		}
		edit.Settled = &settled
	}

	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	if err := a.session.EditTransactions(edit); err != nil {
		return errorf("%v", err)
	}
	tx, _ := a.session.Ledger().Transaction(id)
	successf("updated %s", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}
