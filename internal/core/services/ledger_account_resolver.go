package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
)

// Ledger roles reported in ChartOfAccountsIncompleteError.
const (
	RoleReceivable = "receivable"
	RolePayable    = "payable"
	RoleIncome     = "income"
	RoleTaxPayable = "tax_payable"
	RoleCash       = "cash"
)

// ResolverConfig names the accounts each ledger role maps to. A role whose
// code is empty or absent falls back to the lowest-coded postable account of
// the role's type.
type ResolverConfig struct {
	ReceivableCode   string
	PayableCode      string
	IncomeCode       string
	TaxPayableCode   string
	CashAccountNames []string
}

// DefaultResolverConfig returns the conventional chart codes.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		ReceivableCode:   "1100",
		PayableCode:      "2000",
		IncomeCode:       "4000",
		TaxPayableCode:   "2100",
		CashAccountNames: []string{"Bank", "Cash"},
	}
}

type ledgerAccountResolver struct {
	BaseService
	accountRepo portsrepo.AccountReader
	cfg         ResolverConfig
}

// NewLedgerAccountResolver creates a resolver over the chart of accounts.
func NewLedgerAccountResolver(accountRepo portsrepo.AccountReader, cfg ResolverConfig) portssvc.LedgerAccountResolver {
	return &ledgerAccountResolver{accountRepo: accountRepo, cfg: cfg}
}

var _ portssvc.LedgerAccountResolver = (*ledgerAccountResolver)(nil)

func (r *ledgerAccountResolver) Receivable(ctx context.Context) (*domain.Account, error) {
	return r.resolve(ctx, RoleReceivable, r.cfg.ReceivableCode, domain.Asset)
}

func (r *ledgerAccountResolver) Payable(ctx context.Context) (*domain.Account, error) {
	return r.resolve(ctx, RolePayable, r.cfg.PayableCode, domain.Liability)
}

func (r *ledgerAccountResolver) Income(ctx context.Context) (*domain.Account, error) {
	return r.resolve(ctx, RoleIncome, r.cfg.IncomeCode, domain.Income)
}

func (r *ledgerAccountResolver) TaxPayable(ctx context.Context) (*domain.Account, error) {
	return r.resolve(ctx, RoleTaxPayable, r.cfg.TaxPayableCode, domain.Liability)
}

// Cash prefers the lowest-coded postable account carrying one of the
// configured names, then falls back to the first asset account.
func (r *ledgerAccountResolver) Cash(ctx context.Context) (*domain.Account, error) {
	if len(r.cfg.CashAccountNames) > 0 {
		accounts, err := r.accountRepo.FindAccountsByNames(ctx, r.cfg.CashAccountNames)
		if err != nil {
			return nil, fmt.Errorf("failed to look up cash accounts: %w", err)
		}
		for i := range accounts {
			if !accounts[i].IsGroup {
				return &accounts[i], nil
			}
		}
	}
	return r.fallback(ctx, RoleCash, domain.Asset)
}

func (r *ledgerAccountResolver) resolve(ctx context.Context, role, code string, fallbackType domain.AccountType) (*domain.Account, error) {
	if code != "" {
		account, err := r.accountRepo.FindAccountByCode(ctx, code)
		switch {
		case err == nil && !account.IsGroup:
			return account, nil
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to look up %s account: %w", role, err)
		}
		r.LogDebug(ctx, "Configured ledger account unavailable, using type fallback",
			slog.String("role", role), slog.String("code", code))
	}
	return r.fallback(ctx, role, fallbackType)
}

func (r *ledgerAccountResolver) fallback(ctx context.Context, role string, accountType domain.AccountType) (*domain.Account, error) {
	account, err := r.accountRepo.FindFirstAccountByType(ctx, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.ChartOfAccountsIncompleteError{Missing: []string{role}}
		}
		return nil, fmt.Errorf("failed to look up %s account: %w", role, err)
	}
	return account, nil
}

// missingRoles merges ChartOfAccountsIncompleteErrors so callers can report
// every unresolved role at once. Any other error is returned unchanged.
func missingRoles(errs ...error) error {
	var missing []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var incomplete *apperrors.ChartOfAccountsIncompleteError
		if !errors.As(err, &incomplete) {
			return err
		}
		missing = append(missing, incomplete.Missing...)
	}
	if len(missing) == 0 {
		return nil
	}
	return &apperrors.ChartOfAccountsIncompleteError{Missing: missing}
}
