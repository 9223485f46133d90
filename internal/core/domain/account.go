package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a financial account within the chart of accounts.
//
// Balance is the running total of Σdebit − Σcredit over every journal item
// posted against the account. Only the journal engine changes it.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Name            string          `json:"name"`            // User-defined name
	Code            string          `json:"code"`            // Unique, sortable chart code (e.g. "1100")
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string          `json:"parentAccountID"` // Empty for root accounts
	IsGroup         bool            `json:"isGroup"`         // Aggregation node, not postable
	Balance         decimal.Decimal `json:"balance"`
	AuditFields
}

// HasParent reports whether the account hangs under another account.
func (a Account) HasParent() bool {
	return a.ParentAccountID != ""
}
