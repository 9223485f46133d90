package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// SumJournalItemsByAccount returns Σdebit − Σcredit over all journal items, keyed by account id.
	// Accounts without items are absent.
	SumJournalItemsByAccount(ctx context.Context) (map[string]decimal.Decimal, error)
}
