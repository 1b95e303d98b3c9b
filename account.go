package moneystream

import (
	"fmt"
	"time"
)

// AccountType classifies an account.
type AccountType int

const (
	// Debit is a standard debit card account (借记卡).
	Debit AccountType = iota
	// Credit is a credit card account (信用卡).
	Credit
	// Wallet is an electronic wallet account (电子钱包).
	Wallet
	// Investment is a wealth-management account (理财).
	Investment
)

func (t AccountType) String() string {
	switch t {
	case Debit:
		return "借记卡"
	case Credit:
		return "信用卡"
	case Wallet:
		return "电子钱包"
	case Investment:
		return "理财"
	default:
		return "unknown"
	}
}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "借记卡", "debit":
		return Debit, nil
	case "信用卡", "credit":
		return Credit, nil
	case "电子钱包", "wallet":
		return Wallet, nil
	case "理财", "investment":
		return Investment, nil
	default:
		return 0, fmt.Errorf("unknown account type: %q", s)
	}
}

// AccountTypes lists all account types in display order.
func AccountTypes() []AccountType {
	return []AccountType{Debit, Credit, Wallet, Investment}
}

// Account is a named store of value. Transactions reference accounts by
// name, so renames must cascade into the transaction collection.
type Account struct {
	ID           int
	Name         string
	Type         AccountType
	Suffix       string // optional card number suffix
	Description  string
	Balance      Money // accumulator, only mutated by ledger operations
	IsLocked     bool
	IsValid      bool // false marks a soft-deleted account
	LastModified time.Time
}
