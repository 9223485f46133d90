package services

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance lists every postable account's balance split into debit and credit columns.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)

	// ProfitAndLoss summarises income and expense balances.
	ProfitAndLoss(ctx context.Context) (*domain.PAndLReport, error)

	// BalanceSheet summarises asset, liability and equity balances.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)

	// VerifyLedger recomputes each balance from journal items and reports mismatches.
	VerifyLedger(ctx context.Context) (*domain.LedgerVerification, error)
}
