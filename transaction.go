package moneystream

// Well-known names the ledger stamps on generated transactions.
const (
	// TransferCategory is the category and subcategory of both transfer legs.
	TransferCategory = "转账"
	// TransferMerchant marks transfer legs as system generated.
	TransferMerchant = "系统转账"
	// IncomeCategory is the category of generated refund and reimbursement rows.
	IncomeCategory = "收入"
	// RefundSubcategory is the subcategory of generated refund rows.
	RefundSubcategory = "退款"
	// ReimburseSubcategory is the subcategory of generated reimbursement rows.
	ReimburseSubcategory = "报销"
)

// NoRelated is the Related value of a transaction with no linked pair.
const NoRelated = -1

// Transaction is a single ledger row. Account, category and subcategory are
// weak references by name.
type Transaction struct {
	ID          int
	Date        Date
	Type        TransactionType
	Category    string
	Subcategory string
	Amount      Money // always >= 0; the sign comes from Type
	Account     string
	Merchant    string
	Item        string
	Remarks     string
	Updated     Date
	// Settled is true once the transaction has been refunded or reimbursed.
	// The column is historically named IsRefund in the data files.
	Settled bool
	// Related links transfer legs and refund/reimbursement pairs to their
	// counterpart's id, or NoRelated.
	Related int
}

// IsTransfer reports whether the transaction is one leg of a transfer.
func (t Transaction) IsTransfer() bool { return t.Category == TransferCategory }

// SignedAmount returns the balance effect of the transaction on its account:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() Money {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Filter predicates for Ledger.Transactions.

// AcceptAll accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByAccount filters transactions by account name.
func ByAccount(name string) func(Transaction) bool {
	return func(t Transaction) bool { return t.Account == name }
}

// ByCategory filters transactions by category name.
func ByCategory(name string) func(Transaction) bool {
	return func(t Transaction) bool { return t.Category == name }
}

// BySubcategory filters transactions by (category, subcategory) pair.
func BySubcategory(parent, name string) func(Transaction) bool {
	return func(t Transaction) bool { return t.Category == parent && t.Subcategory == name }
}

// ByType filters transactions by transaction type.
func ByType(typ TransactionType) func(Transaction) bool {
	return func(t Transaction) bool { return t.Type == typ }
}

// ByMerchant filters transactions by merchant name.
func ByMerchant(merchant string) func(Transaction) bool {
	return func(t Transaction) bool { return t.Merchant == merchant }
}

// BySettled filters transactions by their settled flag.
func BySettled(settled bool) func(Transaction) bool {
	return func(t Transaction) bool { return t.Settled == settled }
}

// ByRange filters transactions dated within [from, to], inclusive.
// A zero bound is open.
func ByRange(from, to Date) func(Transaction) bool {
	return func(t Transaction) bool {
		if !from.IsZero() && t.Date.Before(from) {
			return false
		}
		if !to.IsZero() && t.Date.After(to) {
			return false
		}
		return true
	}
}

// All combines predicates so that a transaction must match every one.
func All(filters ...func(Transaction) bool) func(Transaction) bool {
	return func(t Transaction) bool {
		for _, f := range filters {
			if !f(t) {
				return false
			}
		}
		return true
	}
}

// Refundable accepts unsettled expenses that are not transfer legs, the
// transactions eligible for a refund.
func Refundable(t Transaction) bool {
	return t.Type == Expense && !t.Settled && !t.IsTransfer()
}

// Reimbursable returns a predicate accepting unsettled expenses whose
// category belongs to the given eligible set. An empty set accepts any
// refundable expense.
func Reimbursable(categories []string) func(Transaction) bool {
	eligible := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		eligible[c] = struct{}{}
	}
	return func(t Transaction) bool {
		if !Refundable(t) {
			return false
		}
		if len(eligible) == 0 {
			return true
		}
		_, ok := eligible[t.Category]
		return ok
	}
}
