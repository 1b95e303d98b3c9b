package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	start    string
	end      string
	account  string
	category string
	merchant string
	settled  string
	head     int
	tail     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `ms tx [-s <start_date>] [-d <end_date>] [-a <account>] [-c <category>] [-m <merchant>] [-settled 是|否] [-head <n>] [-tail <n>]

  Lists transactions in chronological order, with options for filtering
  and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "The start date for a custom range.")
	f.StringVar(&p.end, "d", "", "The end date for the range.")
	f.StringVar(&p.account, "a", "", "Only transactions on this account.")
	f.StringVar(&p.category, "c", "", "Only transactions in this category.")
	f.StringVar(&p.merchant, "m", "", "Only transactions with this merchant.")
	f.StringVar(&p.settled, "settled", "", "Only settled (是) or unsettled (否) transactions.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		return errorf("-head and -tail flags cannot be used together")
	}

	var from, to moneystream.Date
	var err error
	if p.start != "" {
		if from, err = moneystream.ParseDate(p.start); err != nil {
			return errorf("invalid start date: %v", err)
		}
	}
	if p.end != "" {
		if to, err = moneystream.ParseDate(p.end); err != nil {
			return errorf("invalid end date: %v", err)
		}
	}

	filters := []func(moneystream.Transaction) bool{moneystream.ByRange(from, to)}
	if p.account != "" {
		filters = append(filters, moneystream.ByAccount(p.account))
	}
	if p.category != "" {
		filters = append(filters, moneystream.ByCategory(p.category))
	}
	if p.merchant != "" {
		filters = append(filters, moneystream.ByMerchant(p.merchant))
	}
	switch p.settled {
	case "":
	case "是":
		filters = append(filters, moneystream.BySettled(true))
	case "否":
		filters = append(filters, moneystream.BySettled(false))
	default:
		return errorf("invalid settled filter %q, want 是 or 否", p.settled)
	}

	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	var transactions []moneystream.Transaction
	for _, tx := range a.session.Ledger().Transactions(filters...) {
		transactions = append(transactions, tx)
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))
	return subcommands.ExitSuccess
}
