package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	typ      string
	category string
	month    string
	monthly  bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "income and expense statistics" }
func (*summaryCmd) Usage() string {
	return `ms summary [-t 支出|收入] [-monthly] [-c <category> [-month <yyyy/mm>]]

  Shows income/expense totals. With -monthly, aggregates by month and
  category; with -c, breaks one category down by subcategory, largest
  first. Settled transactions and refund rows are excluded.
`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "支出", "Transaction type to aggregate (支出 or 收入).")
	f.StringVar(&p.category, "c", "", "Break this category down by subcategory.")
	f.StringVar(&p.month, "month", "", "Restrict the category breakdown to one month (yyyy/mm).")
	f.BoolVar(&p.monthly, "monthly", false, "Aggregate by month and category.")
}

func (p *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := moneystream.ParseTransactionType(p.typ)
	if err != nil {
		return errorf("%v", err)
	}

	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()
	ledger := a.session.Ledger()

	switch {
	case p.category != "":
		rows := ledger.SubcategoryTotals(typ, p.category, p.month)
		printMarkdown(renderer.SubcategoryTotals(p.category, rows))
	case p.monthly:
		printMarkdown(renderer.MonthlyByCategory(ledger.MonthlyByCategory(typ)))
	default:
		either := func(t moneystream.Transaction) bool {
			return moneystream.StatsEligible(moneystream.Expense)(t) || moneystream.StatsEligible(moneystream.Income)(t)
		}
		printMarkdown(renderer.Summary(ledger.Summarize(either)))
	}
	return subcommands.ExitSuccess
}
