package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneystream"
	"github.com/google/subcommands"
)

type accountCmd struct {
	typ         string
	suffix      string
	description string
	balance     string
	locked      bool
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "create, rename, edit or delete an account" }
func (*accountCmd) Usage() string {
	return `ms account add -t <type> [-suffix <digits>] [-desc <text>] [-balance <amount>] [-locked] <name>
ms account rename <old> <new>
ms account edit [-t <type>] [-suffix <digits>] [-desc <text>] [-balance <amount>] <name>
ms account delete <name>

  Maintains the account list. Renaming cascades into the transaction
  history so past transactions follow the new name; deleting marks the
  account invalid but keeps its history.
`
}

func (p *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "借记卡", "Account type (借记卡, 信用卡, 电子钱包 or 理财).")
	f.StringVar(&p.suffix, "suffix", "", "Card number suffix.")
	f.StringVar(&p.description, "desc", "", "Account description.")
	f.StringVar(&p.balance, "balance", "", "Balance (initial for add, overwrite for edit).")
	f.BoolVar(&p.locked, "locked", false, "Mark the account as locked.")
}

func (p *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return errorf("expected a verb (add, rename, edit, delete) and an account name")
	}
	verb := f.Arg(0)

	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	switch verb {
	case "add":
		typ, err := moneystream.ParseAccountType(p.typ)
		if err != nil {
			return errorf("%v", err)
		}
		initial := moneystream.M(0)
		if p.balance != "" {
			if initial, err = moneystream.ParseMoney(p.balance); err != nil {
				return errorf("invalid balance: %v", err)
			}
		}
		account, err := a.session.AddAccount(f.Arg(1), typ, p.suffix, p.description, initial, p.locked)
		if err != nil {
			return errorf("%v", err)
		}
		successf("created account %s (%s) with balance %s", account.Name, account.Type, account.Balance)

	case "rename":
		if f.NArg() != 3 {
			return errorf("expected old and new account names")
		}
		if err := a.session.RenameAccount(f.Arg(1), f.Arg(2)); err != nil {
			return errorf("%v", err)
		}
		successf("renamed account %s to %s", f.Arg(1), f.Arg(2))

	case "edit":
		var edit moneystream.AccountEdit
		f.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "suffix":
				edit.Suffix = &p.suffix
			case "desc":
				edit.Description = &p.description
			case "locked":
				edit.Locked = &p.locked
			}
		})
		if p.balance != "" {
			balance, err := moneystream.ParseMoney(p.balance)
			if err != nil {
				return errorf("invalid balance: %v", err)
			}
			edit.Balance = &balance
		}
		if isFlagSet(f, "t") {
			typ, err := moneystream.ParseAccountType(p.typ)
			if err != nil {
				return errorf("%v", err)
			}
			edit.Type = &typ
		}
		if err := a.session.EditAccount(f.Arg(1), edit); err != nil {
			return errorf("%v", err)
		}
		successf("updated account %s", f.Arg(1))

	case "delete":
		if err := a.session.DeleteAccount(f.Arg(1)); err != nil {
			return errorf("%v", err)
		}
		successf("deleted account %s", f.Arg(1))

	default:
		return errorf("unknown verb %q, want add, rename, edit or delete", verb)
	}
	return subcommands.ExitSuccess
}

func isFlagSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
