package moneystream

// Store persists the four entity collections. Implementations load them as
// ordered rows and save by full overwrite; the ledger core does not depend
// on the physical format or path scheme.
//
// Save is called only after all in-memory mutations for an operation have
// succeeded, which keeps the window for divergence between collections as
// small as a full-overwrite scheme allows.
type Store interface {
	Load() (*Ledger, error)
	Save(*Ledger) error
}

// StoreUndoer is implemented by stores that keep a one-slot backup of the
// state prior to the last Save. Undo restores that state and clears the
// backup, so a second Undo fails with ErrEmpty until the next Save. It lets
// a short-lived process undo the last operation of a previous run.
//
// Discard drops the backup without restoring it. The session calls it after
// saving an undone state: that save must not itself become undoable, or
// undoing twice would re-apply the operation.
type StoreUndoer interface {
	Undo() (*Ledger, error)
	Discard() error
}
