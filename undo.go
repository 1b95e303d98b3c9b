package moneystream

import (
	"fmt"
	"slices"
)

// slot is a single-entry snapshot of one entity collection.
type slot[T any] struct {
	rows []T
	full bool
}

func (s *slot[T]) capture(rows []T) {
	s.rows = slices.Clone(rows)
	s.full = true
}

func (s *slot[T]) clear() {
	s.rows = nil
	s.full = false
}

// UndoBuffer holds one pre-mutation snapshot per entity collection. Each
// mutating operation overwrites the previous snapshots; there is no history
// stack, only the last operation can be rolled back.
type UndoBuffer struct {
	transactions  slot[Transaction]
	accounts      slot[Account]
	categories    slot[Category]
	subcategories slot[Subcategory]
}

// Snapshot is a pre-mutation copy of the collections an operation is about
// to touch. Take one with Ledger.Snapshot before mutating, and commit it
// into the buffer with UndoBuffer.Capture once the mutation succeeded.
type Snapshot struct {
	transactions  []Transaction
	accounts      []Account
	categories    []Category
	subcategories []Subcategory

	hasTransactions  bool
	hasAccounts      bool
	hasCategories    bool
	hasSubcategories bool
}

// Collection identifies one of the ledger's entity collections.
type Collection int

const (
	Transactions Collection = iota
	Accounts
	Categories
	Subcategories
)

// Snapshot copies the named collections for a later rollback.
func (l *Ledger) Snapshot(cols ...Collection) Snapshot {
	var s Snapshot
	for _, c := range cols {
		switch c {
		case Transactions:
			s.transactions = slices.Clone(l.transactions)
			s.hasTransactions = true
		case Accounts:
			s.accounts = slices.Clone(l.accounts)
			s.hasAccounts = true
		case Categories:
			s.categories = slices.Clone(l.categories)
			s.hasCategories = true
		case Subcategories:
			s.subcategories = slices.Clone(l.subcategories)
			s.hasSubcategories = true
		}
	}
	return s
}

// Capture stores a snapshot, overwriting whatever the buffer held before.
// Collections absent from the snapshot are cleared: only the last
// operation's state can be restored.
func (u *UndoBuffer) Capture(s Snapshot) {
	u.transactions.clear()
	u.accounts.clear()
	u.categories.clear()
	u.subcategories.clear()

	if s.hasTransactions {
		u.transactions.capture(s.transactions)
	}
	if s.hasAccounts {
		u.accounts.capture(s.accounts)
	}
	if s.hasCategories {
		u.categories.capture(s.categories)
	}
	if s.hasSubcategories {
		u.subcategories.capture(s.subcategories)
	}
}

// IsEmpty reports whether the buffer holds nothing to restore.
func (u *UndoBuffer) IsEmpty() bool {
	return !u.transactions.full && !u.accounts.full && !u.categories.full && !u.subcategories.full
}

// Restore writes every captured collection back into the ledger and clears
// the buffer. It fails with ErrEmpty when nothing was captured.
func (u *UndoBuffer) Restore(l *Ledger) error {
	if u.IsEmpty() {
		return fmt.Errorf("%w: no snapshot captured", ErrEmpty)
	}
	if u.transactions.full {
		l.transactions = u.transactions.rows
	}
	if u.accounts.full {
		l.accounts = u.accounts.rows
	}
	if u.categories.full {
		l.categories = u.categories.rows
	}
	if u.subcategories.full {
		l.subcategories = u.subcategories.rows
	}
	u.transactions.clear()
	u.accounts.clear()
	u.categories.clear()
	u.subcategories.clear()
	return nil
}
