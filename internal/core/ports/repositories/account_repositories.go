package repositories

import (
	"context"
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByNames returns accounts whose name matches one of names, ordered by code.
	FindAccountsByNames(ctx context.Context, names []string) ([]domain.Account, error)

	// FindFirstAccountByType returns the postable account of the given type with the lowest code.
	FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error)

	// ListAccounts retrieves every account ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A taken code yields *apperrors.DuplicateAccountCodeError.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used while posting journal entries.
// Both must run inside TransactionManager.WithinTx.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update.
	// Any id that does not exist yields apperrors.ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalances applies balance = balance + delta per account in one statement each.
	UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
