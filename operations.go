package moneystream

import (
	"fmt"
)

// TransactionInput carries the validated form input for a new transaction.
type TransactionInput struct {
	Date        Date
	Type        TransactionType
	Category    string
	Subcategory string
	Amount      Money
	Account     string
	Merchant    string
	Item        string
	Remarks     string
	// Backdated records the transaction for historical accuracy without
	// applying its amount to the account balance.
	Backdated bool
}

// AddTransaction appends a new income or expense transaction and, unless it
// is backdated, applies its signed amount to the account balance.
func (l *Ledger) AddTransaction(in TransactionInput) (Transaction, error) {
	if in.Amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: amount must not be negative, got %s", ErrValidation, in.Amount.Fixed())
	}
	cat, ok := l.Category(in.Category)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if cat.Type != in.Type {
		return Transaction{}, fmt.Errorf("%w: category %q is a %s category, not %s", ErrValidation, in.Category, cat.Type, in.Type)
	}
	if in.Subcategory != "" {
		if _, ok := l.Subcategory(in.Category, in.Subcategory); !ok {
			return Transaction{}, fmt.Errorf("%w: unknown subcategory %q under %q", ErrValidation, in.Subcategory, in.Category)
		}
	}
	if _, err := l.account(in.Account); err != nil {
		return Transaction{}, fmt.Errorf("%w: account %q is unknown or invalid", ErrValidation, in.Account)
	}

	day := in.Date
	if day.IsZero() {
		day = Today()
	}
	tx := Transaction{
		ID:          l.NextTransactionID(),
		Date:        day,
		Type:        in.Type,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Amount:      in.Amount,
		Account:     in.Account,
		Merchant:    in.Merchant,
		Item:        in.Item,
		Remarks:     in.Remarks,
		Updated:     Today(),
		Related:     NoRelated,
	}
	l.append(tx)
	if !in.Backdated {
		if err := l.applyDelta(in.Account, tx.SignedAmount()); err != nil {
			return Transaction{}, err
		}
	}
	return tx, nil
}

// AddTransfer moves an amount between two accounts as a pair of linked
// transactions: an expense leg on the source and an income leg on the
// destination, each carrying the other's id. Unless backdated, the source
// balance is decremented and the destination incremented; both accounts are
// validated before either is touched.
func (l *Ledger) AddTransfer(day Date, from, to string, amount Money, remarks string, backdated bool) (Transaction, Transaction, error) {
	if from == to {
		return Transaction{}, Transaction{}, fmt.Errorf("%w: source and destination accounts are both %q", ErrValidation, from)
	}
	if !amount.IsPositive() {
		return Transaction{}, Transaction{}, fmt.Errorf("%w: transfer amount must be positive, got %s", ErrValidation, amount.Fixed())
	}
	if _, err := l.account(from); err != nil {
		return Transaction{}, Transaction{}, fmt.Errorf("%w: account %q is unknown or invalid", ErrValidation, from)
	}
	if _, err := l.account(to); err != nil {
		return Transaction{}, Transaction{}, fmt.Errorf("%w: account %q is unknown or invalid", ErrValidation, to)
	}
	if day.IsZero() {
		day = Today()
	}

	outID := l.NextTransactionID()
	inID := outID + 1
	today := Today()
	outLeg := Transaction{
		ID:          outID,
		Date:        day,
		Type:        Expense,
		Category:    TransferCategory,
		Subcategory: TransferCategory,
		Amount:      amount,
		Account:     from,
		Merchant:    TransferMerchant,
		Item:        TransferCategory,
		Remarks:     "转账至" + to + remarks,
		Updated:     today,
		Related:     inID,
	}
	inLeg := Transaction{
		ID:          inID,
		Date:        day,
		Type:        Income,
		Category:    TransferCategory,
		Subcategory: TransferCategory,
		Amount:      amount,
		Account:     to,
		Merchant:    TransferMerchant,
		Item:        TransferCategory,
		Remarks:     "来自" + from + "的转账" + remarks,
		Updated:     today,
		Related:     outID,
	}
	l.append(outLeg, inLeg)
	if !backdated {
		if err := l.applyDelta(from, amount.Neg()); err != nil {
			return Transaction{}, Transaction{}, err
		}
		if err := l.applyDelta(to, amount); err != nil {
			return Transaction{}, Transaction{}, err
		}
	}
	return outLeg, inLeg, nil
}

// Refund settles an expense by creating a linked income transaction for the
// full original amount on the same account. The original is marked settled,
// so refunding it a second time fails. Refunds always affect the balance
// immediately; there is no backdated variant. The credit goes to the
// original's account even when that account has since been soft-deleted.
func (l *Ledger) Refund(id int) (Transaction, error) {
	orig, err := l.transaction(id)
	if err != nil {
		return Transaction{}, err
	}
	if orig.Type != Expense {
		return Transaction{}, fmt.Errorf("%w: transaction %d is not an expense", ErrValidation, id)
	}
	if orig.Settled {
		return Transaction{}, fmt.Errorf("%w: transaction %d is already settled", ErrValidation, id)
	}
	if orig.IsTransfer() {
		return Transaction{}, fmt.Errorf("%w: transaction %d is a transfer leg", ErrValidation, id)
	}
	if _, err := l.accountRow(orig.Account); err != nil {
		return Transaction{}, err
	}

	refund := Transaction{
		ID:          l.NextTransactionID(),
		Date:        Today(),
		Type:        Income,
		Category:    IncomeCategory,
		Subcategory: RefundSubcategory,
		Amount:      orig.Amount,
		Account:     orig.Account,
		Merchant:    orig.Merchant,
		Item:        "退款-" + orig.Item,
		Remarks:     RefundSubcategory,
		Updated:     Today(),
		Settled:     true,
		Related:     orig.ID,
	}
	orig.Settled = true
	orig.Related = refund.ID
	account, amount := orig.Account, orig.Amount
	l.append(refund) // append may reorder; orig pointer is no longer valid

	if err := l.applyDelta(account, amount); err != nil {
		return Transaction{}, err
	}
	return refund, nil
}

// ReimburseRequest selects the expenses to reimburse into one account.
// Amounts and Merchants may override the original values per transaction
// id; a missing entry keeps the original, so a partial reimbursement is an
// Amounts override below the original amount.
type ReimburseRequest struct {
	IDs       []int
	Amounts   map[int]Money
	Merchants map[int]string
	Account   string
	// Categories restricts eligibility to these expense categories.
	// Empty means any refundable expense is eligible.
	Categories []string
}

// Reimburse settles a batch of expenses, creating one linked income
// transaction per original into the reimbursement account. The batch is
// all-or-nothing: every row is derived and validated before anything is
// committed, so a failure on one id leaves the ledger untouched.
func (l *Ledger) Reimburse(req ReimburseRequest) ([]Transaction, error) {
	if len(req.IDs) == 0 {
		return nil, fmt.Errorf("%w: no transactions selected", ErrValidation)
	}
	if _, err := l.account(req.Account); err != nil {
		return nil, fmt.Errorf("%w: account %q is unknown or invalid", ErrValidation, req.Account)
	}
	eligible := Reimbursable(req.Categories)

	// Derive all rows first; commit only after the whole batch validated.
	nextID := l.NextTransactionID()
	today := Today()
	total := M(0)
	rows := make([]Transaction, 0, len(req.IDs))
	originals := make([]*Transaction, 0, len(req.IDs))
	seen := make(map[int]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: transaction %d is selected twice", ErrValidation, id)
		}
		seen[id] = struct{}{}
		orig, err := l.transaction(id)
		if err != nil {
			return nil, err
		}
		if !eligible(*orig) {
			return nil, fmt.Errorf("%w: transaction %d is not eligible for reimbursement", ErrValidation, id)
		}
		amount := orig.Amount
		if override, ok := req.Amounts[id]; ok {
			amount = override
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: reimbursement amount for %d must not be negative", ErrValidation, id)
		}
		merchant := orig.Merchant
		if override, ok := req.Merchants[id]; ok {
			merchant = override
		}
		rows = append(rows, Transaction{
			ID:          nextID,
			Date:        today,
			Type:        Income,
			Category:    IncomeCategory,
			Subcategory: ReimburseSubcategory,
			Amount:      amount,
			Account:     req.Account,
			Merchant:    merchant,
			Item:        fmt.Sprintf("%s_%s报销", orig.Merchant, orig.Item),
			Updated:     today,
			Related:     orig.ID,
		})
		originals = append(originals, orig)
		total = total.Add(amount)
		nextID++
	}

	// Commit: flip originals, append rows, credit the account once.
	for i, orig := range originals {
		orig.Settled = true
		orig.Related = rows[i].ID
	}
	l.append(rows...)
	if err := l.applyDelta(req.Account, total); err != nil {
		return nil, err
	}
	return rows, nil
}

// TransactionEdit overwrites only the non-nil fields of the transaction
// matched by ID.
type TransactionEdit struct {
	ID          int
	Date        *Date
	Type        *TransactionType
	Category    *string
	Subcategory *string
	Amount      *Money
	Account     *string
	Merchant    *string
	Item        *string
	Remarks     *string
	Settled     *bool
}

// EditTransactions applies a batch of field-level edits, as submitted from
// an edited view of a filtered transaction listing. Balances are not
// recomputed: an edit that changes an amount or moves a transaction to
// another account leaves the accumulators where they were, and
// RecomputeBalances is the remedy.
func (l *Ledger) EditTransactions(edits ...TransactionEdit) error {
	// Validate the whole batch before mutating any row.
	for _, e := range edits {
		if _, err := l.transaction(e.ID); err != nil {
			return err
		}
		if e.Amount != nil && e.Amount.IsNegative() {
			return fmt.Errorf("%w: amount for transaction %d must not be negative", ErrValidation, e.ID)
		}
		if e.Account != nil {
			if _, err := l.accountRow(*e.Account); err != nil {
				return fmt.Errorf("%w: account %q is unknown", ErrValidation, *e.Account)
			}
		}
	}
	for _, e := range edits {
		t, _ := l.transaction(e.ID)
		if e.Date != nil {
			t.Date = *e.Date
		}
		if e.Type != nil {
			t.Type = *e.Type
		}
		if e.Category != nil {
			t.Category = *e.Category
		}
		if e.Subcategory != nil {
			t.Subcategory = *e.Subcategory
		}
		if e.Amount != nil {
			t.Amount = *e.Amount
		}
		if e.Account != nil {
			t.Account = *e.Account
		}
		if e.Merchant != nil {
			t.Merchant = *e.Merchant
		}
		if e.Item != nil {
			t.Item = *e.Item
		}
		if e.Remarks != nil {
			t.Remarks = *e.Remarks
		}
		if e.Settled != nil {
			t.Settled = *e.Settled
		}
		t.Updated = Today()
	}
	l.stableSort()
	return nil
}
