package sqlite

import (
	"context"
	"fmt"

	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/shopspring/decimal"
)

type gormReportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepository = (*gormReportingRepository)(nil)

// SumJournalItemsByAccount folds the items in Go to keep decimal precision.
func (r *gormReportingRepository) SumJournalItemsByAccount(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.conn(ctx).Model(&models.JournalItem{}).Select("account_id", "debit", "credit").Rows()
	if err != nil {
		return nil, fmt.Errorf("error querying journal items: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, fmt.Errorf("error scanning journal item: %w", err)
		}
		result[accountID] = result[accountID].Add(debit).Sub(credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal items: %w", err)
	}
	return result, nil
}
