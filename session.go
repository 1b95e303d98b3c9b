package moneystream

// Session binds a ledger to a store and an undo buffer. Every mutating
// operation runs as: snapshot the affected collections, apply the mutation,
// commit the snapshot to the undo buffer, persist. A failed operation
// leaves ledger, buffer and store untouched.
//
// The session carries all request-scoped state explicitly; nothing in the
// package is global.
type Session struct {
	ledger *Ledger
	store  Store
	undo   UndoBuffer
}

// NewSession loads the ledger from the store.
func NewSession(store Store) (*Session, error) {
	l, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{ledger: l, store: store}, nil
}

// Ledger exposes the session's ledger for queries. Mutations must go
// through the session methods so undo capture and persistence happen.
func (s *Session) Ledger() *Ledger { return s.ledger }

// commit stores the pre-mutation snapshot and persists the ledger.
func (s *Session) commit(snap Snapshot) error {
	s.undo.Capture(snap)
	return s.store.Save(s.ledger)
}

// AddTransaction records a new transaction and persists.
func (s *Session) AddTransaction(in TransactionInput) (Transaction, error) {
	snap := s.ledger.Snapshot(Transactions, Accounts)
	tx, err := s.ledger.AddTransaction(in)
	if err != nil {
		return Transaction{}, err
	}
	return tx, s.commit(snap)
}

// AddTransfer records a transfer pair and persists.
func (s *Session) AddTransfer(day Date, from, to string, amount Money, remarks string, backdated bool) (Transaction, Transaction, error) {
	snap := s.ledger.Snapshot(Transactions, Accounts)
	out, in, err := s.ledger.AddTransfer(day, from, to, amount, remarks, backdated)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	return out, in, s.commit(snap)
}

// Refund refunds an expense and persists.
func (s *Session) Refund(id int) (Transaction, error) {
	snap := s.ledger.Snapshot(Transactions, Accounts)
	tx, err := s.ledger.Refund(id)
	if err != nil {
		return Transaction{}, err
	}
	return tx, s.commit(snap)
}

// Reimburse settles a batch of expenses and persists.
func (s *Session) Reimburse(req ReimburseRequest) ([]Transaction, error) {
	snap := s.ledger.Snapshot(Transactions, Accounts)
	rows, err := s.ledger.Reimburse(req)
	if err != nil {
		return nil, err
	}
	return rows, s.commit(snap)
}

// EditTransactions applies field-level edits and persists.
func (s *Session) EditTransactions(edits ...TransactionEdit) error {
	snap := s.ledger.Snapshot(Transactions)
	if err := s.ledger.EditTransactions(edits...); err != nil {
		return err
	}
	return s.commit(snap)
}

// AddAccount creates an account and persists.
func (s *Session) AddAccount(name string, typ AccountType, suffix, description string, initial Money, locked bool) (Account, error) {
	snap := s.ledger.Snapshot(Accounts)
	a, err := s.ledger.AddAccount(name, typ, suffix, description, initial, locked)
	if err != nil {
		return Account{}, err
	}
	return a, s.commit(snap)
}

// RenameAccount renames an account, cascading into transactions, and persists.
func (s *Session) RenameAccount(oldName, newName string) error {
	snap := s.ledger.Snapshot(Accounts, Transactions)
	if err := s.ledger.RenameAccount(oldName, newName); err != nil {
		return err
	}
	return s.commit(snap)
}

// EditAccount applies field-level account changes and persists.
func (s *Session) EditAccount(name string, edit AccountEdit) error {
	snap := s.ledger.Snapshot(Accounts)
	if err := s.ledger.EditAccount(name, edit); err != nil {
		return err
	}
	return s.commit(snap)
}

// DeleteAccount soft-deletes an account and persists.
func (s *Session) DeleteAccount(name string) error {
	snap := s.ledger.Snapshot(Accounts)
	if err := s.ledger.DeleteAccount(name); err != nil {
		return err
	}
	return s.commit(snap)
}

// AddCategory creates a category and persists.
func (s *Session) AddCategory(name string, typ TransactionType, description string) (Category, error) {
	snap := s.ledger.Snapshot(Categories)
	c, err := s.ledger.AddCategory(name, typ, description)
	if err != nil {
		return Category{}, err
	}
	return c, s.commit(snap)
}

// AddSubcategory creates a subcategory and persists.
func (s *Session) AddSubcategory(parent, name, description string) (Subcategory, error) {
	snap := s.ledger.Snapshot(Subcategories)
	sub, err := s.ledger.AddSubcategory(parent, name, description)
	if err != nil {
		return Subcategory{}, err
	}
	return sub, s.commit(snap)
}

// DeleteSubcategory removes an unreferenced subcategory and persists.
func (s *Session) DeleteSubcategory(parent, name string) error {
	snap := s.ledger.Snapshot(Subcategories)
	if err := s.ledger.DeleteSubcategory(parent, name); err != nil {
		return err
	}
	return s.commit(snap)
}

// ReparentSubcategory folds a subcategory into another and persists.
func (s *Session) ReparentSubcategory(oldParent, oldName, newParent, newName string) error {
	snap := s.ledger.Snapshot(Subcategories, Transactions)
	if err := s.ledger.ReparentSubcategory(oldParent, oldName, newParent, newName); err != nil {
		return err
	}
	return s.commit(snap)
}

// AdoptDerivedBalances rewrites drifting accumulators and persists.
func (s *Session) AdoptDerivedBalances() ([]Drift, error) {
	snap := s.ledger.Snapshot(Accounts)
	drifts, err := s.ledger.AdoptDerivedBalances()
	if err != nil {
		return nil, err
	}
	if len(drifts) == 0 {
		return nil, nil // nothing changed, nothing to capture or save
	}
	return drifts, s.commit(snap)
}

// Undo restores the collections captured by the last mutating operation
// and persists the restored state. When no operation has run in this
// session, it falls back to the store's one-slot backup, so the last
// operation of a previous run can be undone too. It fails with ErrEmpty
// when there is nothing to undo.
func (s *Session) Undo() error {
	if !s.undo.IsEmpty() {
		if err := s.undo.Restore(s.ledger); err != nil {
			return err
		}
		if err := s.store.Save(s.ledger); err != nil {
			return err
		}
		// the save just backed up the state we undid from; drop it, or a
		// second undo would restore it and redo the operation
		if u, ok := s.store.(StoreUndoer); ok {
			return u.Discard()
		}
		return nil
	}
	if u, ok := s.store.(StoreUndoer); ok {
		l, err := u.Undo()
		if err != nil {
			return err
		}
		s.ledger = l
		return nil
	}
	return s.undo.Restore(s.ledger) // yields ErrEmpty
}
