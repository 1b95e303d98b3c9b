package moneystream

import (
	"fmt"
	"slices"
	"time"
)

// AddAccount creates a new account with an initial balance. The name must
// not collide with any currently valid account.
func (l *Ledger) AddAccount(name string, typ AccountType, suffix, description string, initial Money, locked bool) (Account, error) {
	if name == "" {
		return Account{}, fmt.Errorf("%w: account name must not be empty", ErrValidation)
	}
	if _, ok := l.Account(name); ok {
		return Account{}, fmt.Errorf("%w: account %q already exists", ErrDuplicate, name)
	}
	a := Account{
		ID:           l.nextAccountID(),
		Name:         name,
		Type:         typ,
		Suffix:       suffix,
		Description:  description,
		Balance:      initial.Round2(),
		IsLocked:     locked,
		IsValid:      true,
		LastModified: time.Now(),
	}
	l.accounts = append(l.accounts, a)
	return a, nil
}

// RenameAccount renames an account and bulk-updates every transaction that
// references the old name, preserving the name-based join. The balance is
// untouched by a rename.
func (l *Ledger) RenameAccount(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: account name must not be empty", ErrValidation)
	}
	if oldName == newName {
		return nil
	}
	a, err := l.account(oldName)
	if err != nil {
		return err
	}
	if _, ok := l.Account(newName); ok {
		return fmt.Errorf("%w: account %q already exists", ErrDuplicate, newName)
	}
	a.Name = newName
	a.LastModified = time.Now()
	for i := range l.transactions {
		if l.transactions[i].Account == oldName {
			l.transactions[i].Account = newName
		}
	}
	return nil
}

// AccountEdit overwrites only the non-nil fields of an account. A direct
// Balance overwrite is allowed here, matching the maintenance form; the
// usual way balances move is through ledger operations.
type AccountEdit struct {
	Type        *AccountType
	Suffix      *string
	Description *string
	Balance     *Money
	Locked      *bool
}

// EditAccount applies field-level changes to the named account.
func (l *Ledger) EditAccount(name string, edit AccountEdit) error {
	a, err := l.account(name)
	if err != nil {
		return err
	}
	if edit.Type != nil {
		a.Type = *edit.Type
	}
	if edit.Suffix != nil {
		a.Suffix = *edit.Suffix
	}
	if edit.Description != nil {
		a.Description = *edit.Description
	}
	if edit.Balance != nil {
		a.Balance = edit.Balance.Round2()
	}
	if edit.Locked != nil {
		a.IsLocked = *edit.Locked
	}
	a.LastModified = time.Now()
	return nil
}

// DeleteAccount soft-deletes an account by marking it invalid. Transactions
// keep their historical name reference; nothing cascades.
func (l *Ledger) DeleteAccount(name string) error {
	a, err := l.account(name)
	if err != nil {
		return err
	}
	a.IsValid = false
	a.LastModified = time.Now()
	return nil
}

// AddCategory creates a new category. Names are unique globally.
func (l *Ledger) AddCategory(name string, typ TransactionType, description string) (Category, error) {
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name must not be empty", ErrValidation)
	}
	if _, ok := l.Category(name); ok {
		return Category{}, fmt.Errorf("%w: category %q already exists", ErrDuplicate, name)
	}
	c := Category{
		ID:          l.nextCategoryID(),
		Name:        name,
		Description: description,
		Type:        typ,
	}
	l.categories = append(l.categories, c)
	return c, nil
}

// AddSubcategory creates a new subcategory under an existing parent. Names
// are unique within their parent.
func (l *Ledger) AddSubcategory(parent, name, description string) (Subcategory, error) {
	if name == "" {
		return Subcategory{}, fmt.Errorf("%w: subcategory name must not be empty", ErrValidation)
	}
	if _, ok := l.Category(parent); !ok {
		return Subcategory{}, fmt.Errorf("%w: unknown category %q", ErrValidation, parent)
	}
	if _, ok := l.Subcategory(parent, name); ok {
		return Subcategory{}, fmt.Errorf("%w: subcategory %q already exists under %q", ErrDuplicate, name, parent)
	}
	s := Subcategory{
		ID:          l.nextSubcategoryID(),
		Name:        name,
		Parent:      parent,
		Description: description,
	}
	l.subcategories = append(l.subcategories, s)
	return s, nil
}

// DeleteSubcategory removes a subcategory row. The delete is refused while
// any transaction still uses the (parent, name) pair.
func (l *Ledger) DeleteSubcategory(parent, name string) error {
	idx := slices.IndexFunc(l.subcategories, func(s Subcategory) bool {
		return s.Parent == parent && s.Name == name
	})
	if idx < 0 {
		return fmt.Errorf("%w: subcategory %q under %q", ErrNotFound, name, parent)
	}
	for _, t := range l.transactions {
		if t.Category == parent && t.Subcategory == name {
			return fmt.Errorf("%w: transactions still use subcategory %q under %q", ErrReferenced, name, parent)
		}
	}
	l.subcategories = slices.Delete(l.subcategories, idx, idx+1)
	return nil
}

// ReparentSubcategory folds one subcategory into another: every matching
// transaction's (category, subcategory) pair is rewritten to the target
// pair, then the old subcategory row is removed. The target must already
// exist.
func (l *Ledger) ReparentSubcategory(oldParent, oldName, newParent, newName string) error {
	if oldParent == newParent && oldName == newName {
		return fmt.Errorf("%w: source and target subcategories are identical", ErrValidation)
	}
	oldIdx := slices.IndexFunc(l.subcategories, func(s Subcategory) bool {
		return s.Parent == oldParent && s.Name == oldName
	})
	if oldIdx < 0 {
		return fmt.Errorf("%w: subcategory %q under %q", ErrNotFound, oldName, oldParent)
	}
	if _, ok := l.Subcategory(newParent, newName); !ok {
		return fmt.Errorf("%w: subcategory %q under %q", ErrNotFound, newName, newParent)
	}
	for i := range l.transactions {
		t := &l.transactions[i]
		if t.Category == oldParent && t.Subcategory == oldName {
			t.Category = newParent
			t.Subcategory = newName
		}
	}
	l.subcategories = slices.Delete(l.subcategories, oldIdx, oldIdx+1)
	return nil
}
