package moneystream

import "testing"

func TestRecomputeBalancesReportsDrift(t *testing.T) {
	l := NewLedger()
	if _, err := l.AddAccount("支付宝", Wallet, "", "", M(0), false); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if _, err := l.AddCategory("食品", Expense, ""); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	tx, err := l.AddTransaction(TransactionInput{Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝"})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if drifts := l.RecomputeBalances(); len(drifts) != 0 {
		t.Fatalf("fresh ledger drifts: %v", drifts)
	}

	// editing the amount leaves the accumulator behind
	amount := M(65)
	if err := l.EditTransactions(TransactionEdit{ID: tx.ID, Amount: &amount}); err != nil {
		t.Fatalf("EditTransactions: %v", err)
	}
	drifts := l.RecomputeBalances()
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1", len(drifts))
	}
	d := drifts[0]
	if d.Account != "支付宝" || !d.Recorded.Equal(M(-50)) || !d.Derived.Equal(M(-65)) {
		t.Errorf("drift = %+v", d)
	}
	if !d.Diff().Equal(M(15)) {
		t.Errorf("diff = %s, want 15.00", d.Diff().Fixed())
	}
}

func TestAdoptDerivedBalances(t *testing.T) {
	l := NewLedger()
	if _, err := l.AddAccount("支付宝", Wallet, "", "", M(0), false); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if _, err := l.AddCategory("食品", Expense, ""); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	tx, err := l.AddTransaction(TransactionInput{Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝"})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	amount := M(65)
	if err := l.EditTransactions(TransactionEdit{ID: tx.ID, Amount: &amount}); err != nil {
		t.Fatalf("EditTransactions: %v", err)
	}

	fixed, err := l.AdoptDerivedBalances()
	if err != nil {
		t.Fatalf("AdoptDerivedBalances: %v", err)
	}
	if len(fixed) != 1 {
		t.Fatalf("got %d fixed drifts, want 1", len(fixed))
	}
	if got := balance(t, l, "支付宝"); !got.Equal(M(-65)) {
		t.Errorf("balance = %s, want -65.00", got.Fixed())
	}
	if again, _ := l.AdoptDerivedBalances(); len(again) != 0 {
		t.Errorf("second adopt found drifts: %v", again)
	}
}

func TestRecomputeSkipsDeletedAccounts(t *testing.T) {
	l := newTestLedger(t)
	expense(t, l, "支付宝", "食品", "外卖", 10)
	if err := l.DeleteAccount("支付宝"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	for _, d := range l.RecomputeBalances() {
		if d.Account == "支付宝" {
			t.Error("deleted account reported in drift")
		}
	}
}
