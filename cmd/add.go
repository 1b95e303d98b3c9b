package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	date        string
	typ         string
	category    string
	subcategory string
	account     string
	merchant    string
	item        string
	remarks     string
	backdated   bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new expense or income transaction" }
func (*addCmd) Usage() string {
	return `ms add -c <category> -a <account> [-t 支出|收入] [-sc <subcategory>] [-d <date>] [-m <merchant>] [-i <item>] [-r <remarks>] [-backdated] <amount>

  Records a transaction and applies its amount to the account balance.
  A backdated transaction is recorded without touching the balance.
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Transaction date (defaults to today).")
	f.StringVar(&p.typ, "t", "支出", "Transaction type (支出 or 收入).")
	f.StringVar(&p.category, "c", "", "Category name.")
	f.StringVar(&p.subcategory, "sc", "", "Subcategory name.")
	f.StringVar(&p.account, "a", "", "Account name.")
	f.StringVar(&p.merchant, "m", "", "Merchant name.")
	f.StringVar(&p.item, "i", "", "Item description.")
	f.StringVar(&p.remarks, "r", "", "Free-form remarks.")
	f.BoolVar(&p.backdated, "backdated", false, "Record without applying the amount to the account balance.")
}

func (p *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one amount argument")
	}
	amount, err := moneystream.ParseMoney(f.Arg(0))
	if err != nil {
		return errorf("invalid amount: %v", err)
	}
	typ, err := moneystream.ParseTransactionType(p.typ)
	if err != nil {
		return errorf("%v", err)
	}
	var day moneystream.Date
	if p.date != "" {
		if day, err = moneystream.ParseDate(p.date); err != nil {
			return errorf("invalid date: %v", err)
		}
	}

	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	tx, err := a.session.AddTransaction(moneystream.TransactionInput{
		Date:        day,
		Type:        typ,
		Category:    p.category,
		Subcategory: p.subcategory,
		Amount:      amount,
		Account:     p.account,
		Merchant:    p.merchant,
		Item:        p.item,
		Remarks:     p.remarks,
		Backdated:   p.backdated,
	})
	if err != nil {
		return errorf("%v", err)
	}
	successf("recorded %s", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}
