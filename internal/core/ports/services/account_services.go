package services

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account as a flat list ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// GetChartOfAccounts returns the account forest. A parent cycle yields
	// *apperrors.CyclicChartOfAccountsError.
	GetChartOfAccounts(ctx context.Context) ([]*domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// GetAccountBalance returns the stored running balance (Σdebit − Σcredit).
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
