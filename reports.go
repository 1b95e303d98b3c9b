package moneystream

import (
	"slices"
	"strings"
)

// Summary totals a set of transactions.
type Summary struct {
	Income  Money
	Expense Money
	Net     Money // Income - Expense
	Count   int
}

// Summarize totals the transactions matching the filters.
func (l *Ledger) Summarize(filters ...func(Transaction) bool) Summary {
	var s Summary
	for _, t := range l.Transactions(filters...) {
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
		s.Count++
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// StatsEligible accepts the transactions counted by the statistics views:
// the requested type, unsettled, with a positive amount, excluding refund
// rows.
func StatsEligible(typ TransactionType) func(Transaction) bool {
	return func(t Transaction) bool {
		return t.Type == typ && !t.Settled && t.Amount.IsPositive() && t.Subcategory != RefundSubcategory
	}
}

// MonthCategoryTotal is one cell of the month-by-category aggregation.
type MonthCategoryTotal struct {
	Month    string // "2006/01" key
	Category string
	Total    Money
}

// MonthlyByCategory aggregates stats-eligible transactions of one type by
// month and category, sorted by month then category.
func (l *Ledger) MonthlyByCategory(typ TransactionType) []MonthCategoryTotal {
	totals := make(map[[2]string]Money)
	for _, t := range l.Transactions(StatsEligible(typ)) {
		key := [2]string{t.Date.MonthKey(), t.Category}
		totals[key] = totals[key].Add(t.Amount)
	}
	out := make([]MonthCategoryTotal, 0, len(totals))
	for key, total := range totals {
		out = append(out, MonthCategoryTotal{Month: key[0], Category: key[1], Total: total})
	}
	slices.SortFunc(out, func(a, b MonthCategoryTotal) int {
		if c := strings.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

// SubcategoryTotal is one slice of a category's subcategory breakdown.
type SubcategoryTotal struct {
	Subcategory string
	Total       Money
}

// SubcategoryTotals breaks one category down by subcategory for
// stats-eligible transactions of one type. An empty month covers all time.
func (l *Ledger) SubcategoryTotals(typ TransactionType, category, month string) []SubcategoryTotal {
	totals := make(map[string]Money)
	for _, t := range l.Transactions(StatsEligible(typ), ByCategory(category)) {
		if month != "" && t.Date.MonthKey() != month {
			continue
		}
		totals[t.Subcategory] = totals[t.Subcategory].Add(t.Amount)
	}
	out := make([]SubcategoryTotal, 0, len(totals))
	for sub, total := range totals {
		out = append(out, SubcategoryTotal{Subcategory: sub, Total: total})
	}
	slices.SortFunc(out, func(a, b SubcategoryTotal) int {
		return b.Total.Decimal().Cmp(a.Total.Decimal()) // largest first
	})
	return out
}

// TypeBalance sums the balances of all valid accounts of one type.
type TypeBalance struct {
	Type  AccountType
	Total Money
	Count int
}

// BalancesByType groups valid account balances by account type, in display
// order. Types without accounts appear with a zero total.
func (l *Ledger) BalancesByType() []TypeBalance {
	out := make([]TypeBalance, 0, len(AccountTypes()))
	for _, typ := range AccountTypes() {
		tb := TypeBalance{Type: typ}
		for a := range l.Accounts(false) {
			if a.Type == typ {
				tb.Total = tb.Total.Add(a.Balance)
				tb.Count++
			}
		}
		out = append(out, tb)
	}
	return out
}
