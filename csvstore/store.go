// Package csvstore persists the ledger as four CSV files in a data
// directory, using the historical Transactions.csv / Categories.csv /
// Subcategories.csv / Account.csv layout.
package csvstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/moneystream"
)

const (
	transactionsFile  = "Transactions.csv"
	categoriesFile    = "Categories.csv"
	subcategoriesFile = "Subcategories.csv"
	accountsFile      = "Account.csv"

	// undoDir holds the files as they were before the last save.
	undoDir = ".undo"
)

var allFiles = []string{transactionsFile, accountsFile, categoriesFile, subcategoriesFile}

// Store is a CSV-file storage adapter.
type Store struct {
	dir string
}

// New returns a store rooted at the given data directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the four collections. A missing file yields an empty
// collection, so a fresh directory loads as an empty ledger.
func (s *Store) Load() (*moneystream.Ledger, error) {
	accounts, err := loadFile(s.dir, accountsFile, moneystream.DecodeAccounts)
	if err != nil {
		return nil, err
	}
	categories, err := loadFile(s.dir, categoriesFile, moneystream.DecodeCategories)
	if err != nil {
		return nil, err
	}
	subcategories, err := loadFile(s.dir, subcategoriesFile, moneystream.DecodeSubcategories)
	if err != nil {
		return nil, err
	}
	transactions, err := loadFile(s.dir, transactionsFile, moneystream.DecodeTransactions)
	if err != nil {
		return nil, err
	}
	return moneystream.NewLedgerOf(accounts, categories, subcategories, transactions), nil
}

func loadFile[T any](dir, name string, decode func(r io.Reader) ([]T, error)) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	rows, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return rows, nil
}

// Save overwrites all four files. The previous files are first moved aside
// into the undo directory so the last save can be undone. Transactions are
// written first so that a failure mid-save is most likely to leave the
// transaction history intact.
func (s *Store) Save(l *moneystream.Ledger) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := s.backup(); err != nil {
		return err
	}

	var buf bytes.Buffer
	write := func(name string, encode func(w *bytes.Buffer) error) error {
		buf.Reset()
		if err := encode(&buf); err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(s.dir, name), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
		return nil
	}

	if err := write(transactionsFile, func(w *bytes.Buffer) error {
		return moneystream.EncodeTransactions(w, l.TransactionRows())
	}); err != nil {
		return err
	}
	if err := write(accountsFile, func(w *bytes.Buffer) error {
		return moneystream.EncodeAccounts(w, l.AccountRows())
	}); err != nil {
		return err
	}
	if err := write(categoriesFile, func(w *bytes.Buffer) error {
		return moneystream.EncodeCategories(w, l.CategoryRows())
	}); err != nil {
		return err
	}
	return write(subcategoriesFile, func(w *bytes.Buffer) error {
		return moneystream.EncodeSubcategories(w, l.SubcategoryRows())
	})
}

// backup moves the current files into the undo directory, replacing any
// previous backup. A fresh directory yields an empty backup, so undoing
// the very first save restores the empty ledger.
func (s *Store) backup() error {
	undo := filepath.Join(s.dir, undoDir)
	if err := os.RemoveAll(undo); err != nil {
		return fmt.Errorf("clearing undo backup: %w", err)
	}
	if err := os.MkdirAll(undo, 0o755); err != nil {
		return fmt.Errorf("creating undo backup: %w", err)
	}
	for _, name := range allFiles {
		err := os.Rename(filepath.Join(s.dir, name), filepath.Join(undo, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("backing up %s: %w", name, err)
		}
	}
	return nil
}

// Undo restores the files as they were before the last save and clears the
// backup, then loads the restored state.
func (s *Store) Undo() (*moneystream.Ledger, error) {
	undo := filepath.Join(s.dir, undoDir)
	if _, err := os.Stat(undo); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: nothing to undo", moneystream.ErrEmpty)
	} else if err != nil {
		return nil, fmt.Errorf("checking undo backup: %w", err)
	}
	for _, name := range allFiles {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing %s: %w", name, err)
		}
		err := os.Rename(filepath.Join(undo, name), filepath.Join(s.dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("restoring %s: %w", name, err)
		}
	}
	if err := os.RemoveAll(undo); err != nil {
		return nil, fmt.Errorf("clearing undo backup: %w", err)
	}
	return s.Load()
}

// Discard drops the undo backup without restoring it.
func (s *Store) Discard() error {
	if err := os.RemoveAll(filepath.Join(s.dir, undoDir)); err != nil {
		return fmt.Errorf("clearing undo backup: %w", err)
	}
	return nil
}
