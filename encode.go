package moneystream

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// The CSV layouts match the historical data files column for column, with
// 是/否 booleans, so existing files keep working unchanged.

var (
	transactionHeader = []string{"TransactionID", "Date", "TransactionType", "CategoryName", "SubcategoryName", "Amount", "AccountName", "Remarks", "Merchant", "Item", "UpdatedDate", "IsRefund", "RelatedTransactionID"}
	accountHeader     = []string{"AccountID", "AccountName", "AccountType", "Description", "AccountSuffix", "IsLocked", "Balance", "IsValid", "LastModifiedTime"}
	categoryHeader    = []string{"CategoryID", "CategoryName", "Description", "TransactionType"}
	subcategoryHeader = []string{"SubcategoryID", "SubcategoryName", "ParentCategoryName", "Description"}
)

func encodeBool(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func decodeBool(s string) (bool, error) {
	switch s {
	case "是":
		return true, nil
	case "否", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag %q, want 是 or 否", s)
	}
}

// EncodeTransactions writes transactions as CSV rows.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return err
	}
	for _, t := range txs {
		related := ""
		if t.Related != NoRelated {
			related = strconv.Itoa(t.Related)
		}
		updated := ""
		if !t.Updated.IsZero() {
			updated = t.Updated.String()
		}
		row := []string{
			strconv.Itoa(t.ID),
			t.Date.String(),
			t.Type.String(),
			t.Category,
			t.Subcategory,
			t.Amount.Fixed(),
			t.Account,
			t.Remarks,
			t.Merchant,
			t.Item,
			updated,
			encodeBool(t.Settled),
			related,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTransactions reads transactions from CSV.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	rows, err := readRows(r, transactionHeader)
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		t, err := decodeTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: %w", i+2, err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func decodeTransaction(row []string) (Transaction, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid id %q: %w", row[0], err)
	}
	day, err := ParseDate(row[1])
	if err != nil {
		return Transaction{}, err
	}
	typ, err := ParseTransactionType(row[2])
	if err != nil {
		return Transaction{}, err
	}
	amount, err := ParseMoney(row[5])
	if err != nil {
		return Transaction{}, err
	}
	var updated Date
	if row[10] != "" {
		if updated, err = ParseDate(row[10]); err != nil {
			return Transaction{}, err
		}
	}
	settled, err := decodeBool(row[11])
	if err != nil {
		return Transaction{}, err
	}
	related := NoRelated
	if row[12] != "" {
		// pandas writes optional ints as floats in older files; accept both.
		f, err := strconv.ParseFloat(row[12], 64)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid related id %q: %w", row[12], err)
		}
		related = int(f)
	}
	return Transaction{
		ID:          id,
		Date:        day,
		Type:        typ,
		Category:    row[3],
		Subcategory: row[4],
		Amount:      amount,
		Account:     row[6],
		Remarks:     row[7],
		Merchant:    row[8],
		Item:        row[9],
		Updated:     updated,
		Settled:     settled,
		Related:     related,
	}, nil
}

// EncodeAccounts writes accounts as CSV rows.
func EncodeAccounts(w io.Writer, accounts []Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(accountHeader); err != nil {
		return err
	}
	for _, a := range accounts {
		modified := ""
		if !a.LastModified.IsZero() {
			modified = a.LastModified.Format(DatetimeFormat)
		}
		row := []string{
			strconv.Itoa(a.ID),
			a.Name,
			a.Type.String(),
			a.Description,
			a.Suffix,
			encodeBool(a.IsLocked),
			a.Balance.Fixed(),
			encodeBool(a.IsValid),
			modified,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeAccounts reads accounts from CSV.
func DecodeAccounts(r io.Reader) ([]Account, error) {
	rows, err := readRows(r, accountHeader)
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(rows))
	for i, row := range rows {
		a, err := decodeAccount(row)
		if err != nil {
			return nil, fmt.Errorf("accounts row %d: %w", i+2, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func decodeAccount(row []string) (Account, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return Account{}, fmt.Errorf("invalid id %q: %w", row[0], err)
	}
	typ, err := ParseAccountType(row[2])
	if err != nil {
		return Account{}, err
	}
	locked, err := decodeBool(row[5])
	if err != nil {
		return Account{}, err
	}
	balance, err := ParseMoney(row[6])
	if err != nil {
		return Account{}, err
	}
	valid, err := decodeBool(row[7])
	if err != nil {
		return Account{}, err
	}
	var modified time.Time
	if row[8] != "" {
		if modified, err = time.ParseInLocation(DatetimeFormat, row[8], time.Local); err != nil {
			return Account{}, fmt.Errorf("invalid timestamp %q: %w", row[8], err)
		}
	}
	return Account{
		ID:           id,
		Name:         row[1],
		Type:         typ,
		Description:  row[3],
		Suffix:       row[4],
		IsLocked:     locked,
		Balance:      balance,
		IsValid:      valid,
		LastModified: modified,
	}, nil
}

// EncodeCategories writes categories as CSV rows.
func EncodeCategories(w io.Writer, categories []Category) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(categoryHeader); err != nil {
		return err
	}
	for _, c := range categories {
		row := []string{strconv.Itoa(c.ID), c.Name, c.Description, c.Type.String()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCategories reads categories from CSV.
func DecodeCategories(r io.Reader) ([]Category, error) {
	rows, err := readRows(r, categoryHeader)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("categories row %d: invalid id %q: %w", i+2, row[0], err)
		}
		typ, err := ParseTransactionType(row[3])
		if err != nil {
			return nil, fmt.Errorf("categories row %d: %w", i+2, err)
		}
		categories = append(categories, Category{ID: id, Name: row[1], Description: row[2], Type: typ})
	}
	return categories, nil
}

// EncodeSubcategories writes subcategories as CSV rows.
func EncodeSubcategories(w io.Writer, subcategories []Subcategory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(subcategoryHeader); err != nil {
		return err
	}
	for _, s := range subcategories {
		row := []string{strconv.Itoa(s.ID), s.Name, s.Parent, s.Description}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSubcategories reads subcategories from CSV.
func DecodeSubcategories(r io.Reader) ([]Subcategory, error) {
	rows, err := readRows(r, subcategoryHeader)
	if err != nil {
		return nil, err
	}
	subcategories := make([]Subcategory, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("subcategories row %d: invalid id %q: %w", i+2, row[0], err)
		}
		subcategories = append(subcategories, Subcategory{ID: id, Name: row[1], Parent: row[2], Description: row[3]})
	}
	return subcategories, nil
}

// readRows reads all CSV records, checks the header, and pads short rows so
// decoders can index columns safely.
func readRows(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows from hand-edited files
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records[0]) == 0 || records[0][0] != header[0] {
		return nil, fmt.Errorf("unexpected header %v, want %v", records[0], header)
	}
	rows := records[1:]
	for i, row := range rows {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows, nil
}
