package services

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
)

// LedgerAccountResolver locates the accounts that invoice posting and payment
// application debit and credit. A role that cannot be resolved yields
// *apperrors.ChartOfAccountsIncompleteError.
type LedgerAccountResolver interface {
	Receivable(ctx context.Context) (*domain.Account, error)
	Payable(ctx context.Context) (*domain.Account, error)
	Income(ctx context.Context) (*domain.Account, error)
	TaxPayable(ctx context.Context) (*domain.Account, error)
	Cash(ctx context.Context) (*domain.Account, error)
}
