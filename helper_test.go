package moneystream

import "testing"

// newTestLedger builds a ledger with the accounts and categories most tests
// need: two accounts, expense categories with subcategories, and the income
// category with its generated subcategories.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()

	account := func(name string, typ AccountType, balance float64) {
		t.Helper()
		if _, err := l.AddAccount(name, typ, "", "", M(balance), false); err != nil {
			t.Fatalf("AddAccount(%q): %v", name, err)
		}
	}
	category := func(name string, typ TransactionType, subs ...string) {
		t.Helper()
		if _, err := l.AddCategory(name, typ, ""); err != nil {
			t.Fatalf("AddCategory(%q): %v", name, err)
		}
		for _, sub := range subs {
			if _, err := l.AddSubcategory(name, sub, ""); err != nil {
				t.Fatalf("AddSubcategory(%q, %q): %v", name, sub, err)
			}
		}
	}

	account("支付宝", Wallet, 100)
	account("储蓄卡", Debit, 1000)
	category("食品", Expense, "外卖", "三餐")
	category("交通", Expense, "打车")
	category("收入", Income, "工资", RefundSubcategory, ReimburseSubcategory)
	return l
}

// expense records an expense on the test ledger and fails the test on error.
func expense(t *testing.T, l *Ledger, account, category, subcategory string, amount float64) Transaction {
	t.Helper()
	tx, err := l.AddTransaction(TransactionInput{
		Type:        Expense,
		Category:    category,
		Subcategory: subcategory,
		Amount:      M(amount),
		Account:     account,
		Merchant:    "商户",
		Item:        "商品",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	return tx
}

// balance returns the named account's balance or fails the test.
func balance(t *testing.T, l *Ledger, name string) Money {
	t.Helper()
	a, ok := l.Account(name)
	if !ok {
		t.Fatalf("account %q not found", name)
	}
	return a.Balance
}

// memStore is an in-memory Store for session tests.
type memStore struct {
	accounts      []Account
	categories    []Category
	subcategories []Subcategory
	transactions  []Transaction
	saves         int
}

func (s *memStore) Load() (*Ledger, error) {
	return NewLedgerOf(s.accounts, s.categories, s.subcategories, s.transactions), nil
}

func (s *memStore) Save(l *Ledger) error {
	s.accounts = l.AccountRows()
	s.categories = l.CategoryRows()
	s.subcategories = l.SubcategoryRows()
	s.transactions = l.TransactionRows()
	s.saves++
	return nil
}

// newTestSession wraps the test ledger in a session over a memStore.
func newTestSession(t *testing.T) (*Session, *memStore) {
	t.Helper()
	l := newTestLedger(t)
	store := &memStore{
		accounts:      l.AccountRows(),
		categories:    l.CategoryRows(),
		subcategories: l.SubcategoryRows(),
		transactions:  l.TransactionRows(),
	}
	s, err := NewSession(store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, store
}
