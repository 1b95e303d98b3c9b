package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/moneystream"
	"github.com/google/subcommands"
)

type categoryCmd struct {
	typ         string
	description string
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "maintain categories and subcategories" }
func (*categoryCmd) Usage() string {
	return `ms category list
ms category add [-t 支出|收入] [-desc <text>] <name>
ms category addsub [-desc <text>] <category> <name>
ms category delsub <category> <name>
ms category movesub <category> <name> <new-category> <new-name>

  Maintains the category tree. A subcategory cannot be deleted while
  transactions still use it; movesub rewrites those transactions to the
  target pair and then removes the old subcategory.
`
}

func (p *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "支出", "Transaction type of a new category (支出 or 收入).")
	f.StringVar(&p.description, "desc", "", "Description.")
}

func (p *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		return errorf("expected a verb (list, add, addsub, delsub, movesub)")
	}
	verb := f.Arg(0)

	a, err := openApp()
	if err != nil {
		return errorf("%v", err)
	}
	defer a.Close()

	switch verb {
	case "list":
		var b strings.Builder
		for c := range a.session.Ledger().Categories(nil) {
			fmt.Fprintf(&b, "- **%s** (%s)", c.Name, c.Type)
			var subs []string
			for s := range a.session.Ledger().Subcategories(c.Name) {
				subs = append(subs, s.Name)
			}
			if len(subs) > 0 {
				fmt.Fprintf(&b, ": %s", strings.Join(subs, ", "))
			}
			b.WriteString("\n")
		}
		printMarkdown(b.String())

	case "add":
		if f.NArg() != 2 {
			return errorf("expected a category name")
		}
		typ, err := moneystream.ParseTransactionType(p.typ)
		if err != nil {
			return errorf("%v", err)
		}
		c, err := a.session.AddCategory(f.Arg(1), typ, p.description)
		if err != nil {
			return errorf("%v", err)
		}
		successf("created category %s (%s)", c.Name, c.Type)

	case "addsub":
		if f.NArg() != 3 {
			return errorf("expected a category and a subcategory name")
		}
		s, err := a.session.AddSubcategory(f.Arg(1), f.Arg(2), p.description)
		if err != nil {
			return errorf("%v", err)
		}
		successf("created subcategory %s under %s", s.Name, s.Parent)

	case "delsub":
		if f.NArg() != 3 {
			return errorf("expected a category and a subcategory name")
		}
		if err := a.session.DeleteSubcategory(f.Arg(1), f.Arg(2)); err != nil {
			return errorf("%v", err)
		}
		successf("deleted subcategory %s under %s", f.Arg(2), f.Arg(1))

	case "movesub":
		if f.NArg() != 5 {
			return errorf("expected source and target category/subcategory pairs")
		}
		if err := a.session.ReparentSubcategory(f.Arg(1), f.Arg(2), f.Arg(3), f.Arg(4)); err != nil {
			return errorf("%v", err)
		}
		successf("moved subcategory %s/%s to %s/%s", f.Arg(1), f.Arg(2), f.Arg(3), f.Arg(4))

	default:
		return errorf("unknown verb %q, want list, add, addsub, delsub or movesub", verb)
	}
	return subcommands.ExitSuccess
}
