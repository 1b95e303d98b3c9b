package moneystream

import (
	"slices"
	"testing"
)

func TestNextTransactionID(t *testing.T) {
	l := NewLedger()
	if got := l.NextTransactionID(); got != 0 {
		t.Errorf("empty ledger NextTransactionID = %d, want 0", got)
	}

	l = NewLedgerOf(nil, nil, nil, []Transaction{
		{ID: 3, Date: MustParseDate("2025-01-01"), Related: NoRelated},
		{ID: 7, Date: MustParseDate("2025-01-02"), Related: NoRelated},
		{ID: 5, Date: MustParseDate("2025-01-03"), Related: NoRelated},
	})
	if got := l.NextTransactionID(); got != 8 {
		t.Errorf("NextTransactionID = %d, want max+1 = 8", got)
	}
}

func TestTransactionsChronologicalOrder(t *testing.T) {
	l := newTestLedger(t)
	for _, day := range []string{"2025-03-10", "2025-03-01", "2025-03-05"} {
		if _, err := l.AddTransaction(TransactionInput{
			Date: MustParseDate(day), Type: Expense, Category: "食品", Amount: M(1), Account: "支付宝",
		}); err != nil {
			t.Fatalf("AddTransaction: %v", err)
		}
	}

	var days []string
	for _, tx := range l.Transactions() {
		days = append(days, tx.Date.String())
	}
	want := []string{"2025-03-01", "2025-03-05", "2025-03-10"}
	if !slices.Equal(days, want) {
		t.Errorf("order = %v, want %v", days, want)
	}
}

func TestTransactionsFilters(t *testing.T) {
	l := newTestLedger(t)
	expense(t, l, "支付宝", "食品", "外卖", 10)
	expense(t, l, "储蓄卡", "食品", "三餐", 20)
	expense(t, l, "支付宝", "交通", "打车", 30)

	count := func(filters ...func(Transaction) bool) int {
		n := 0
		for range l.Transactions(filters...) {
			n++
		}
		return n
	}

	if got := count(); got != 3 {
		t.Errorf("unfiltered count = %d, want 3", got)
	}
	if got := count(ByAccount("支付宝")); got != 2 {
		t.Errorf("ByAccount count = %d, want 2", got)
	}
	// every filter must match
	if got := count(ByAccount("支付宝"), ByCategory("食品")); got != 1 {
		t.Errorf("combined count = %d, want 1", got)
	}
	if got := count(BySubcategory("食品", "外卖")); got != 1 {
		t.Errorf("BySubcategory count = %d, want 1", got)
	}
}

func TestByRange(t *testing.T) {
	tx := Transaction{Date: MustParseDate("2025-03-05")}

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"inside", "2025-03-01", "2025-03-10", true},
		{"on lower bound", "2025-03-05", "2025-03-10", true},
		{"on upper bound", "2025-03-01", "2025-03-05", true},
		{"before", "2025-03-06", "2025-03-10", false},
		{"after", "2025-03-01", "2025-03-04", false},
		{"open lower", "", "2025-03-10", true},
		{"open upper", "2025-03-01", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var from, to Date
			if tc.from != "" {
				from = MustParseDate(tc.from)
			}
			if tc.to != "" {
				to = MustParseDate(tc.to)
			}
			if got := ByRange(from, to)(tx); got != tc.want {
				t.Errorf("ByRange(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestMerchantsFirstSeenOrder(t *testing.T) {
	l := NewLedgerOf(nil, nil, nil, []Transaction{
		{ID: 0, Date: MustParseDate("2025-01-01"), Merchant: "甲", Related: NoRelated},
		{ID: 1, Date: MustParseDate("2025-01-02"), Merchant: "乙", Related: NoRelated},
		{ID: 2, Date: MustParseDate("2025-01-03"), Merchant: "甲", Related: NoRelated},
		{ID: 3, Date: MustParseDate("2025-01-04"), Merchant: "", Related: NoRelated},
	})
	got := l.Merchants()
	want := []string{"甲", "乙"}
	if !slices.Equal(got, want) {
		t.Errorf("Merchants() = %v, want %v", got, want)
	}
}

func TestAccountsIterator(t *testing.T) {
	l := newTestLedger(t)
	if err := l.DeleteAccount("支付宝"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	var valid, all int
	for range l.Accounts(false) {
		valid++
	}
	for range l.Accounts(true) {
		all++
	}
	if valid != 1 || all != 2 {
		t.Errorf("valid = %d, all = %d, want 1 and 2", valid, all)
	}
}
