package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/renderer"
	"github.com/google/subcommands"
)

type transferCmd struct {
	date      string
	from      string
	to        string
	remarks   string
	backdated bool
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move an amount between two accounts" }
func (*transferCmd) Usage() string {
	return `ms transfer -from <account> -to <account> [-d <date>] [-r <remarks>] [-backdated] <amount>

  Records a pair of linked transactions: an expense leg on the source
  account and an income leg on the destination. Unless backdated, the
  source balance is decremented and the destination incremented.
`
}

func (p *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Transfer date (defaults to today).")
	f.StringVar(&p.from, "from", "", "Source account name.")
	f.StringVar(&p.to, "to", "", "Destination account name.")
	f.StringVar(&p.remarks, "r", "", "Extra remarks appended to both legs.")
	f.BoolVar(&p.backdated, "backdated", false, "Record without touching either balance.")
}

func (p *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one amount argument")
	}
	amount, err := moneystream.ParseMoney(f.Arg(0))
	if err != nil {
		return errorf("invalid amount: %v", err)
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

	out, in, err := a.session.AddTransfer(day, p.from, p.to, amount, p.remarks, p.backdated)
	if err != nil {
		return errorf("%v", err)
	}
	successf("recorded %s", renderer.Transaction(out))
	successf("recorded %s", renderer.Transaction(in))
	return subcommands.ExitSuccess
}
