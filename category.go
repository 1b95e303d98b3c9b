package moneystream

import "fmt"

// TransactionType distinguishes income from expense.
type TransactionType int

const (
	// Expense is money leaving an account (支出).
	Expense TransactionType = iota
	// Income is money entering an account (收入).
	Income
)

func (t TransactionType) String() string {
	switch t {
	case Expense:
		return "支出"
	case Income:
		return "收入"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "支出", "expense":
		return Expense, nil
	case "收入", "income":
		return Income, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Category is a top-level transaction category. Names are unique globally
// and each category belongs to exactly one transaction type.
type Category struct {
	ID          int
	Name        string
	Description string
	Type        TransactionType
}

// Subcategory is a second-level category. Names are unique within their
// parent category; the parent is referenced by name.
type Subcategory struct {
	ID          int
	Name        string
	Parent      string // parent category name
	Description string
}
