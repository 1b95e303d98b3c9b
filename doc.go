// Package moneystream implements a personal finance ledger.
//
// The ledger records income, expense and transfer transactions against a
// small set of named accounts, supports refunds and reimbursements as
// linked transactions, and keeps account balances consistent across all
// mutating operations.
//
// The core is a pure in-memory state machine: a [Ledger] holds the four
// entity collections (accounts, categories, subcategories, transactions)
// and every operation validates its input completely before mutating
// anything. Persistence is delegated to a [Store]; a [Session] wires a
// ledger, a store and a single-slot [UndoBuffer] together so that every
// successful operation is captured for one-step rollback and then saved.
package moneystream
