package moneystream

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Ledger holds the four entity collections in memory.
//
// The transaction collection is always in chronological order; maintenance
// collections keep their stored order.
type Ledger struct {
	accounts      []Account
	categories    []Category
	subcategories []Subcategory
	transactions  []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// NewLedgerOf creates a ledger from loaded collections. Transactions are
// sorted chronologically; the input slices are not retained.
func NewLedgerOf(accounts []Account, categories []Category, subcategories []Subcategory, transactions []Transaction) *Ledger {
	l := &Ledger{
		accounts:      slices.Clone(accounts),
		categories:    slices.Clone(categories),
		subcategories: slices.Clone(subcategories),
		transactions:  slices.Clone(transactions),
	}
	l.stableSort()
	return l
}

// stableSort sorts transactions by date. The sort is stable, so transactions
// on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// append adds transactions and maintains the chronological order.
func (l *Ledger) append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// NextTransactionID returns the id the next transaction will be assigned:
// the current maximum plus one, or 0 for an empty ledger.
func (l *Ledger) NextTransactionID() int {
	if len(l.transactions) == 0 {
		return 0
	}
	max := l.transactions[0].ID
	for _, t := range l.transactions[1:] {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func (l *Ledger) nextAccountID() int {
	next := 0
	for _, a := range l.accounts {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	return next
}

func (l *Ledger) nextCategoryID() int {
	next := 0
	for _, c := range l.categories {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return next
}

func (l *Ledger) nextSubcategoryID() int {
	next := 0
	for _, s := range l.subcategories {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// account returns a pointer to the valid account with this name.
func (l *Ledger) account(name string) (*Account, error) {
	for i := range l.accounts {
		if l.accounts[i].Name == name && l.accounts[i].IsValid {
			return &l.accounts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: account %q", ErrNotFound, name)
}

// accountRow returns a pointer to the account with this name, preferring a
// valid row but falling back to a soft-deleted one. The transaction history
// may reference accounts deleted after the fact.
func (l *Ledger) accountRow(name string) (*Account, error) {
	if a, err := l.account(name); err == nil {
		return a, nil
	}
	for i := range l.accounts {
		if l.accounts[i].Name == name {
			return &l.accounts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: account %q", ErrNotFound, name)
}

// Account returns the valid account with this name.
func (l *Ledger) Account(name string) (Account, bool) {
	a, err := l.account(name)
	if err != nil {
		return Account{}, false
	}
	return *a, true
}

// Category returns the category with this name.
func (l *Ledger) Category(name string) (Category, bool) {
	for _, c := range l.categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Subcategory returns the subcategory with this (parent, name) pair.
func (l *Ledger) Subcategory(parent, name string) (Subcategory, bool) {
	for _, s := range l.subcategories {
		if s.Parent == parent && s.Name == name {
			return s, true
		}
	}
	return Subcategory{}, false
}

// transaction returns a pointer to the transaction with this id.
func (l *Ledger) transaction(id int) (*Transaction, error) {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return &l.transactions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
}

// Transaction returns the transaction with this id.
func (l *Ledger) Transaction(id int) (Transaction, bool) {
	t, err := l.transaction(id)
	if err != nil {
		return Transaction{}, false
	}
	return *t, true
}

// Transactions returns an iterator over transactions in chronological order.
// A transaction is yielded when it matches every filter.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Accounts iterates over accounts in stored order. Soft-deleted accounts
// are skipped unless includeInvalid is set.
func (l *Ledger) Accounts(includeInvalid bool) iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for _, a := range l.accounts {
			if !a.IsValid && !includeInvalid {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Categories iterates over categories, optionally restricted to one
// transaction type (pass nil for all).
func (l *Ledger) Categories(typ *TransactionType) iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for _, c := range l.categories {
			if typ != nil && c.Type != *typ {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Subcategories iterates over the subcategories of a parent category.
func (l *Ledger) Subcategories(parent string) iter.Seq[Subcategory] {
	return func(yield func(Subcategory) bool) {
		for _, s := range l.subcategories {
			if s.Parent != parent {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Merchants returns the distinct merchant names that appear in the ledger,
// in first-seen order. Used by input forms for merchant recall.
func (l *Ledger) Merchants() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, t := range l.transactions {
		if t.Merchant == "" {
			continue
		}
		if _, ok := seen[t.Merchant]; ok {
			continue
		}
		seen[t.Merchant] = struct{}{}
		names = append(names, t.Merchant)
	}
	return names
}

// Row accessors for storage adapters. The returned slices are copies.

func (l *Ledger) AccountRows() []Account         { return slices.Clone(l.accounts) }
func (l *Ledger) CategoryRows() []Category       { return slices.Clone(l.categories) }
func (l *Ledger) SubcategoryRows() []Subcategory { return slices.Clone(l.subcategories) }
func (l *Ledger) TransactionRows() []Transaction { return slices.Clone(l.transactions) }
