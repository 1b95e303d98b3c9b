package moneystream

import (
	"fmt"
	"time"
)

// applyDelta adds a signed delta to the named account's balance, rounds the
// result to 2 decimal places and stamps LastModified. The balance is an
// accumulator, not a value derived from the transaction history.
//
// Soft-deleted accounts are resolved too: a refund credits the original
// expense's account even when that account was deleted in the meantime.
// Operations that open new activity on an account validate it upfront.
func (l *Ledger) applyDelta(account string, delta Money) error {
	a, err := l.accountRow(account)
	if err != nil {
		return err
	}
	a.Balance = a.Balance.Add(delta).Round2()
	a.LastModified = time.Now()
	return nil
}

// Drift compares an account's recorded balance accumulator against the
// balance derived from its full transaction history.
type Drift struct {
	Account  string
	Recorded Money // the accumulator
	Derived  Money // sum of signed amounts over the account's history
}

// Diff returns Recorded - Derived.
func (d Drift) Diff() Money { return d.Recorded.Sub(d.Derived) }

// RecomputeBalances derives every valid account's balance from the full
// transaction history and returns one Drift per account whose accumulator
// disagrees with the derived value.
//
// The data files record neither opening balances nor the backdated flag, so
// the derived value treats every transaction as balance-affecting; the
// report is advisory and nothing is modified. Direct edits to a
// transaction's amount are the usual source of drift.
func (l *Ledger) RecomputeBalances() []Drift {
	derived := make(map[string]Money)
	for _, t := range l.transactions {
		derived[t.Account] = derived[t.Account].Add(t.SignedAmount())
	}

	var drifts []Drift
	for _, a := range l.accounts {
		if !a.IsValid {
			continue
		}
		want := derived[a.Name].Round2()
		if !a.Balance.Equal(want) {
			drifts = append(drifts, Drift{Account: a.Name, Recorded: a.Balance, Derived: want})
		}
	}
	return drifts
}

// AdoptDerivedBalances overwrites each drifting account's accumulator with
// its derived balance. Returns the drifts that were fixed.
func (l *Ledger) AdoptDerivedBalances() ([]Drift, error) {
	drifts := l.RecomputeBalances()
	for _, d := range drifts {
		a, err := l.account(d.Account)
		if err != nil {
			return nil, fmt.Errorf("adopting derived balance: %w", err)
		}
		a.Balance = d.Derived
		a.LastModified = time.Now()
	}
	return drifts, nil
}
