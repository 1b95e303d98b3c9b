package csvstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/moneystream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedger(t *testing.T) *moneystream.Ledger {
	t.Helper()
	l := moneystream.NewLedger()
	_, err := l.AddAccount("支付宝", moneystream.Wallet, "", "", moneystream.M(100), false)
	require.NoError(t, err)
	_, err = l.AddCategory("食品", moneystream.Expense, "")
	require.NoError(t, err)
	_, err = l.AddSubcategory("食品", "外卖", "")
	require.NoError(t, err)
	_, err = l.AddTransaction(moneystream.TransactionInput{
		Type: moneystream.Expense, Category: "食品", Subcategory: "外卖",
		Amount: moneystream.M(45.5), Account: "支付宝", Merchant: "商户",
	})
	require.NoError(t, err)
	return l
}

func TestLoadEmptyDirectory(t *testing.T) {
	s := New(t.TempDir())

	l, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, l.AccountRows())
	assert.Empty(t, l.TransactionRows())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.Save(testLedger(t)))
	for _, name := range []string{"Transactions.csv", "Account.csv", "Categories.csv", "Subcategories.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	l, err := s.Load()
	require.NoError(t, err)

	a, ok := l.Account("支付宝")
	require.True(t, ok)
	assert.Equal(t, "54.50", a.Balance.Fixed())

	txs := l.TransactionRows()
	require.Len(t, txs, 1)
	assert.Equal(t, "外卖", txs[0].Subcategory)
	assert.Equal(t, moneystream.NoRelated, txs[0].Related)
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	require.NoError(t, s.Save(testLedger(t)))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestUndoRestoresPreviousSave(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	l := testLedger(t)
	require.NoError(t, s.Save(l))

	_, err := l.AddTransaction(moneystream.TransactionInput{
		Type: moneystream.Expense, Category: "食品", Amount: moneystream.M(10), Account: "支付宝",
	})
	require.NoError(t, err)
	require.NoError(t, s.Save(l))

	restored, err := s.Undo()
	require.NoError(t, err)
	assert.Len(t, restored.TransactionRows(), 1, "undo should drop the second transaction")

	a, ok := restored.Account("支付宝")
	require.True(t, ok)
	assert.Equal(t, "54.50", a.Balance.Fixed(), "undo should restore the balance")

	// the backup is one slot deep
	_, err = s.Undo()
	assert.ErrorIs(t, err, moneystream.ErrEmpty)
}

func TestUndoWithoutAnySave(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Undo()
	assert.True(t, errors.Is(err, moneystream.ErrEmpty))
}

func TestUndoFirstSaveRestoresEmptyLedger(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(testLedger(t)))

	restored, err := s.Undo()
	require.NoError(t, err)
	assert.Empty(t, restored.TransactionRows())
	assert.Empty(t, restored.AccountRows())
}

func TestDiscardDropsBackup(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(testLedger(t)))

	require.NoError(t, s.Discard())
	_, err := s.Undo()
	assert.ErrorIs(t, err, moneystream.ErrEmpty)
}
