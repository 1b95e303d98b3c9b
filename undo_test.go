package moneystream

import (
	"errors"
	"fmt"
	"testing"
)

func TestUndoRestoresTransactionsAndBalances(t *testing.T) {
	s, store := newTestSession(t)

	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if got := balance(t, s.Ledger(), "支付宝"); !got.Equal(M(50)) {
		t.Fatalf("balance after expense = %s, want 50.00", got.Fixed())
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if n := len(s.Ledger().TransactionRows()); n != 0 {
		t.Errorf("undo left %d transactions", n)
	}
	if got := balance(t, s.Ledger(), "支付宝"); !got.Equal(M(100)) {
		t.Errorf("undo left the balance at %s, want 100.00", got.Fixed())
	}
	if len(store.transactions) != 0 {
		t.Error("undo was not persisted")
	}
}

func TestUndoIsSingleSlot(t *testing.T) {
	s, _ := newTestSession(t)

	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if err := s.Undo(); !errors.Is(err, ErrEmpty) {
		t.Errorf("second undo: err = %v, want ErrEmpty", err)
	}
}

func TestUndoCoversOnlyLastOperation(t *testing.T) {
	s, _ := newTestSession(t)

	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "交通", Amount: M(20), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	// only the second expense is rolled back
	if n := len(s.Ledger().TransactionRows()); n != 1 {
		t.Errorf("got %d transactions, want 1", n)
	}
	if got := balance(t, s.Ledger(), "支付宝"); !got.Equal(M(50)) {
		t.Errorf("balance = %s, want 50.00", got.Fixed())
	}
}

func TestUndoAfterFailedOperation(t *testing.T) {
	s, _ := newTestSession(t)

	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	// a failed operation must not overwrite the captured snapshot
	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "住房", Amount: M(10), Account: "支付宝",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if n := len(s.Ledger().TransactionRows()); n != 0 {
		t.Errorf("undo of the successful operation left %d transactions", n)
	}
}

func TestUndoRestoresOnlyCapturedCollections(t *testing.T) {
	s, _ := newTestSession(t)

	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	// a category operation captures only the category collection
	if _, err := s.AddCategory("住房", Expense, ""); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if _, ok := s.Ledger().Category("住房"); ok {
		t.Error("undo did not remove the new category")
	}
	if n := len(s.Ledger().TransactionRows()); n != 1 {
		t.Errorf("undo of a category operation touched transactions: %d rows", n)
	}
}

func TestUndoBufferCapture(t *testing.T) {
	l := newTestLedger(t)
	var u UndoBuffer

	if !u.IsEmpty() {
		t.Fatal("fresh buffer is not empty")
	}
	if err := u.Restore(l); !errors.Is(err, ErrEmpty) {
		t.Fatalf("restore on empty buffer: err = %v, want ErrEmpty", err)
	}

	u.Capture(l.Snapshot(Accounts))
	if u.IsEmpty() {
		t.Fatal("buffer empty after capture")
	}
	if err := u.Restore(l); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !u.IsEmpty() {
		t.Error("buffer not cleared by restore")
	}
}

// undoableStore is a memStore that keeps a one-slot backup of the state
// prior to the last save, like the file-backed stores do.
type undoableStore struct {
	memStore
	prev *memStore
}

func (s *undoableStore) Save(l *Ledger) error {
	prev := s.memStore
	s.prev = &prev
	return s.memStore.Save(l)
}

func (s *undoableStore) Undo() (*Ledger, error) {
	if s.prev == nil {
		return nil, fmt.Errorf("%w: nothing to undo", ErrEmpty)
	}
	s.memStore = *s.prev
	s.prev = nil
	return s.Load()
}

func (s *undoableStore) Discard() error {
	s.prev = nil
	return nil
}

func newUndoableStore(t *testing.T) *undoableStore {
	t.Helper()
	l := newTestLedger(t)
	return &undoableStore{memStore: memStore{
		accounts:      l.AccountRows(),
		categories:    l.CategoryRows(),
		subcategories: l.SubcategoryRows(),
		transactions:  l.TransactionRows(),
	}}
}

func TestUndoWithStoreBackupIsNotARedo(t *testing.T) {
	store := newUndoableStore(t)
	s, err := NewSession(store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if _, err := s.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if n := len(s.Ledger().TransactionRows()); n != 0 {
		t.Fatalf("undo left %d transactions", n)
	}

	// saving the undone state cleared the store backup, so a second undo
	// must report empty instead of restoring the undone operation
	if err := s.Undo(); !errors.Is(err, ErrEmpty) {
		t.Errorf("second undo: err = %v, want ErrEmpty", err)
	}
	if n := len(s.Ledger().TransactionRows()); n != 0 {
		t.Errorf("second undo re-applied the operation: %d transactions", n)
	}
	if n := len(store.transactions); n != 0 {
		t.Errorf("second undo re-applied the operation in the store: %d rows", n)
	}
}

func TestUndoFallsBackToStoreBackup(t *testing.T) {
	store := newUndoableStore(t)
	first, err := NewSession(store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := first.AddTransaction(TransactionInput{
		Type: Expense, Category: "食品", Amount: M(50), Account: "支付宝",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	// a fresh session has an empty buffer and undoes through the store
	second, err := NewSession(store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := second.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if n := len(second.Ledger().TransactionRows()); n != 0 {
		t.Errorf("undo left %d transactions", n)
	}
	if err := second.Undo(); !errors.Is(err, ErrEmpty) {
		t.Errorf("second undo: err = %v, want ErrEmpty", err)
	}
}
