// Package sqlstore persists the ledger in a local SQLite database. It
// implements the same load/save contract as csvstore: collections are
// loaded as ordered rows and saved by full overwrite.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/moneystream"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	suffix TEXT NOT NULL DEFAULT '',
	is_locked INTEGER NOT NULL DEFAULT 0,
	balance TEXT NOT NULL,
	is_valid INTEGER NOT NULL DEFAULT 1,
	last_modified TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS subcategories (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	parent TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	type TEXT NOT NULL,
	category TEXT NOT NULL,
	subcategory TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL,
	account TEXT NOT NULL,
	merchant TEXT NOT NULL DEFAULT '',
	item TEXT NOT NULL DEFAULT '',
	remarks TEXT NOT NULL DEFAULT '',
	updated TEXT NOT NULL DEFAULT '',
	settled INTEGER NOT NULL DEFAULT 0,
	related INTEGER
);
CREATE TABLE IF NOT EXISTS undo_accounts AS SELECT * FROM accounts WHERE 0;
CREATE TABLE IF NOT EXISTS undo_categories AS SELECT * FROM categories WHERE 0;
CREATE TABLE IF NOT EXISTS undo_subcategories AS SELECT * FROM subcategories WHERE 0;
CREATE TABLE IF NOT EXISTS undo_transactions AS SELECT * FROM transactions WHERE 0;
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`

var collections = []string{"accounts", "categories", "subcategories", "transactions"}

// Store is a SQLite storage adapter.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Load reads the four collections.
func (s *Store) Load() (*moneystream.Ledger, error) {
	accounts, err := s.loadAccounts()
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories()
	if err != nil {
		return nil, err
	}
	subcategories, err := s.loadSubcategories()
	if err != nil {
		return nil, err
	}
	transactions, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	return moneystream.NewLedgerOf(accounts, categories, subcategories, transactions), nil
}

func (s *Store) loadAccounts() ([]moneystream.Account, error) {
	rows, err := s.db.Query(`SELECT id, name, type, description, suffix, is_locked, balance, is_valid, last_modified FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	defer rows.Close()

	var accounts []moneystream.Account
	for rows.Next() {
		var a moneystream.Account
		var typ, balance, modified string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Description, &a.Suffix, &a.IsLocked, &balance, &a.IsValid, &modified); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		if a.Type, err = moneystream.ParseAccountType(typ); err != nil {
			return nil, err
		}
		if a.Balance, err = moneystream.ParseMoney(balance); err != nil {
			return nil, err
		}
		if modified != "" {
			if a.LastModified, err = time.ParseInLocation(moneystream.DatetimeFormat, modified, time.Local); err != nil {
				return nil, fmt.Errorf("invalid timestamp %q: %w", modified, err)
			}
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) loadCategories() ([]moneystream.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, description, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	defer rows.Close()

	var categories []moneystream.Category
	for rows.Next() {
		var c moneystream.Category
		var typ string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &typ); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if c.Type, err = moneystream.ParseTransactionType(typ); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) loadSubcategories() ([]moneystream.Subcategory, error) {
	rows, err := s.db.Query(`SELECT id, name, parent, description FROM subcategories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []moneystream.Subcategory
	for rows.Next() {
		var sc moneystream.Subcategory
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Parent, &sc.Description); err != nil {
			return nil, fmt.Errorf("scanning subcategory: %w", err)
		}
		subcategories = append(subcategories, sc)
	}
	return subcategories, rows.Err()
}

func (s *Store) loadTransactions() ([]moneystream.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, date, type, category, subcategory, amount, account, merchant, item, remarks, updated, settled, related FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	defer rows.Close()

	var transactions []moneystream.Transaction
	for rows.Next() {
		var t moneystream.Transaction
		var day, typ, amount, updated string
		var related sql.NullInt64
		if err := rows.Scan(&t.ID, &day, &typ, &t.Category, &t.Subcategory, &amount, &t.Account, &t.Merchant, &t.Item, &t.Remarks, &updated, &t.Settled, &related); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if t.Date, err = moneystream.ParseDate(day); err != nil {
			return nil, err
		}
		if t.Type, err = moneystream.ParseTransactionType(typ); err != nil {
			return nil, err
		}
		if t.Amount, err = moneystream.ParseMoney(amount); err != nil {
			return nil, err
		}
		if updated != "" {
			if t.Updated, err = moneystream.ParseDate(updated); err != nil {
				return nil, err
			}
		}
		t.Related = moneystream.NoRelated
		if related.Valid {
			t.Related = int(related.Int64)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Save overwrites all four tables in one database transaction. The previous
// rows are first copied into the undo tables so the last save can be undone.
func (s *Store) Save(l *moneystream.Ledger) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range collections {
		if _, err := tx.Exec("DELETE FROM undo_" + table); err != nil {
			return fmt.Errorf("clearing undo_%s: %w", table, err)
		}
		if _, err := tx.Exec("INSERT INTO undo_" + table + " SELECT * FROM " + table); err != nil {
			return fmt.Errorf("backing up %s: %w", table, err)
		}
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('has_undo', 1) ON CONFLICT(key) DO UPDATE SET value = 1`); err != nil {
		return fmt.Errorf("marking undo backup: %w", err)
	}

	for _, a := range l.AccountRows() {
		modified := ""
		if !a.LastModified.IsZero() {
			modified = a.LastModified.Format(moneystream.DatetimeFormat)
		}
		_, err := tx.Exec(`INSERT INTO accounts (id, name, type, description, suffix, is_locked, balance, is_valid, last_modified) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, a.Type.String(), a.Description, a.Suffix, a.IsLocked, a.Balance.Fixed(), a.IsValid, modified)
		if err != nil {
			return fmt.Errorf("saving account %q: %w", a.Name, err)
		}
	}
	for _, c := range l.CategoryRows() {
		if _, err := tx.Exec(`INSERT INTO categories (id, name, description, type) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Description, c.Type.String()); err != nil {
			return fmt.Errorf("saving category %q: %w", c.Name, err)
		}
	}
	for _, sc := range l.SubcategoryRows() {
		if _, err := tx.Exec(`INSERT INTO subcategories (id, name, parent, description) VALUES (?, ?, ?, ?)`,
			sc.ID, sc.Name, sc.Parent, sc.Description); err != nil {
			return fmt.Errorf("saving subcategory %q: %w", sc.Name, err)
		}
	}
	for _, t := range l.TransactionRows() {
		var related any
		if t.Related != moneystream.NoRelated {
			related = t.Related
		}
		updated := ""
		if !t.Updated.IsZero() {
			updated = t.Updated.String()
		}
		_, err := tx.Exec(`INSERT INTO transactions (id, date, type, category, subcategory, amount, account, merchant, item, remarks, updated, settled, related) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Date.String(), t.Type.String(), t.Category, t.Subcategory, t.Amount.Fixed(), t.Account, t.Merchant, t.Item, t.Remarks, updated, t.Settled, related)
		if err != nil {
			return fmt.Errorf("saving transaction %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Undo restores the rows as they were before the last save and clears the
// backup, then loads the restored state.
func (s *Store) Undo() (*moneystream.Ledger, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning undo: %w", err)
	}
	defer tx.Rollback()

	var hasUndo int
	err = tx.QueryRow(`SELECT value FROM meta WHERE key = 'has_undo'`).Scan(&hasUndo)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking undo backup: %w", err)
	}
	if hasUndo == 0 {
		return nil, fmt.Errorf("%w: nothing to undo", moneystream.ErrEmpty)
	}

	for _, table := range collections {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", table, err)
		}
		if _, err := tx.Exec("INSERT INTO " + table + " SELECT * FROM undo_" + table); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", table, err)
		}
		if _, err := tx.Exec("DELETE FROM undo_" + table); err != nil {
			return nil, fmt.Errorf("clearing undo_%s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`UPDATE meta SET value = 0 WHERE key = 'has_undo'`); err != nil {
		return nil, fmt.Errorf("marking undo backup: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing undo: %w", err)
	}
	return s.Load()
}

// Discard drops the undo backup without restoring it.
func (s *Store) Discard() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning discard: %w", err)
	}
	defer tx.Rollback()

	for _, table := range collections {
		if _, err := tx.Exec("DELETE FROM undo_" + table); err != nil {
			return fmt.Errorf("clearing undo_%s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`UPDATE meta SET value = 0 WHERE key = 'has_undo'`); err != nil {
		return fmt.Errorf("marking undo backup: %w", err)
	}
	return tx.Commit()
}
