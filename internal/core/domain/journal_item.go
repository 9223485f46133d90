package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a journal item is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// JournalItem is one line of a journal entry. A line carries exactly one side
// and a strictly positive amount; the opposite column is always zero.
type JournalItem struct {
	ItemID         string          `json:"itemID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	Side           EntrySide       `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
}

// DebitLine builds a debit line for accountID.
func DebitLine(accountID string, amount decimal.Decimal) JournalItem {
	return JournalItem{AccountID: accountID, Side: Debit, Amount: amount}
}

// CreditLine builds a credit line for accountID.
func CreditLine(accountID string, amount decimal.Decimal) JournalItem {
	return JournalItem{AccountID: accountID, Side: Credit, Amount: amount}
}

// LineFromColumns converts the two-column debit/credit shape into a tagged
// line. Exactly one column must be non-zero and neither may be negative.
func LineFromColumns(accountID string, debit, credit decimal.Decimal) (JournalItem, error) {
	if debit.IsNegative() || credit.IsNegative() {
		return JournalItem{}, fmt.Errorf("line for account %s has a negative amount", accountID)
	}
	switch {
	case debit.IsPositive() && credit.IsZero():
		return DebitLine(accountID, debit), nil
	case credit.IsPositive() && debit.IsZero():
		return CreditLine(accountID, credit), nil
	case debit.IsZero() && credit.IsZero():
		return JournalItem{}, fmt.Errorf("line for account %s has neither a debit nor a credit", accountID)
	default:
		return JournalItem{}, fmt.Errorf("line for account %s has both a debit and a credit", accountID)
	}
}

// Debit returns the debit column value.
func (i JournalItem) Debit() decimal.Decimal {
	if i.Side == Debit {
		return i.Amount
	}
	return decimal.Zero
}

// Credit returns the credit column value.
func (i JournalItem) Credit() decimal.Decimal {
	if i.Side == Credit {
		return i.Amount
	}
	return decimal.Zero
}

// SignedAmount is the item's effect on the account balance (debit − credit).
func (i JournalItem) SignedAmount() decimal.Decimal {
	return i.Debit().Sub(i.Credit())
}
