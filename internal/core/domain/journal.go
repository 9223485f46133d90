package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft     JournalStatus = "DRAFT"
	JournalPosted    JournalStatus = "POSTED"
	JournalCancelled JournalStatus = "CANCELLED"
)

// IsValid reports whether s is a known journal status.
func (s JournalStatus) IsValid() bool {
	switch s {
	case JournalDraft, JournalPosted, JournalCancelled:
		return true
	}
	return false
}

// JournalEntry represents a single financial event composed of journal items.
type JournalEntry struct {
	JournalEntryID string        `json:"journalEntryID"`
	EntryDate      time.Time     `json:"entryDate"`
	Reference      string        `json:"reference"`
	Description    string        `json:"description"`
	Status         JournalStatus `json:"status"`
	Items          []JournalItem `json:"items,omitempty"` // insertion order
	AuditFields
}

// Totals returns the debit and credit sums over the entry's items.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	return SumItems(e.Items)
}

// SumItems returns the debit and credit sums over items.
func SumItems(items []JournalItem) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, item := range items {
		debit = debit.Add(item.Debit())
		credit = credit.Add(item.Credit())
	}
	return debit, credit
}

// BalanceChanges folds items into a per-account balance delta (debit − credit).
func BalanceChanges(items []JournalItem) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		changes[item.AccountID] = changes[item.AccountID].Add(item.SignedAmount())
	}
	return changes
}
