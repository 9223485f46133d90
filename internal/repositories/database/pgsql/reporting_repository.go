package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SumJournalItemsByAccount totals every journal item per account, whatever the entry status.
func (r *reportingRepository) SumJournalItemsByAccount(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT account_id, COALESCE(SUM(debit), 0) - COALESCE(SUM(credit), 0) AS net
		FROM journal_items
		GROUP BY account_id
	`
	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying journal item totals: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var net decimal.Decimal
		if err := rows.Scan(&accountID, &net); err != nil {
			return nil, fmt.Errorf("error scanning journal item totals: %w", err)
		}
		result[accountID] = net
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal item totals: %w", err)
	}
	return result, nil
}
