package moneystream

import "errors"

// Error kinds returned by ledger operations. They are wrapped with context
// using fmt.Errorf and %w, and matched by callers with errors.Is.
var (
	// ErrValidation reports bad input: a non-existent account or category,
	// equal source and destination accounts, a non-positive amount, or an
	// operation applied to a transaction that is not eligible for it.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate reports a name collision on create.
	ErrDuplicate = errors.New("duplicate name")

	// ErrReferenced reports a delete blocked by existing references.
	ErrReferenced = errors.New("still referenced")

	// ErrNotFound reports an operation targeting a missing id or name.
	ErrNotFound = errors.New("not found")

	// ErrEmpty reports an undo with nothing captured.
	ErrEmpty = errors.New("nothing to undo")
)
