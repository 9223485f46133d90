package accounting

import (
	"fmt"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest |Σdebit − Σcredit| a journal entry may carry.
// A skew of exactly this amount is accepted.
var BalanceTolerance = decimal.RequireFromString("0.01")

// IsBalanced reports whether the debit/credit skew is within BalanceTolerance.
func IsBalanced(debit, credit decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThanOrEqual(BalanceTolerance)
}

// ValidateJournalBalance checks that items are well formed and that the entry
// balances. Structural problems wrap apperrors.ErrValidation; a skew beyond
// the tolerance is returned as *apperrors.UnbalancedEntryError.
func ValidateJournalBalance(items []domain.JournalItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: journal entry must have at least one item", apperrors.ErrValidation)
	}

	for i, item := range items {
		if item.AccountID == "" {
			return fmt.Errorf("%w: item %d has no account", apperrors.ErrValidation, i+1)
		}
		if item.Side != domain.Debit && item.Side != domain.Credit {
			return fmt.Errorf("%w: item %d has unknown side %q", apperrors.ErrValidation, i+1, item.Side)
		}
		if !item.Amount.IsPositive() {
			return fmt.Errorf("%w: item %d amount must be positive", apperrors.ErrValidation, i+1)
		}
	}

	debit, credit := domain.SumItems(items)
	if !IsBalanced(debit, credit) {
		return &apperrors.UnbalancedEntryError{TotalDebit: debit, TotalCredit: credit}
	}
	return nil
}

// NaturalBalance converts a stored balance (Σdebit − Σcredit) into the
// account type's normal-side presentation: debit-normal for ASSET and EXPENSE,
// credit-normal for LIABILITY, EQUITY and INCOME.
func NaturalBalance(balance decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return balance, nil
	case domain.Liability, domain.Equity, domain.Income:
		return balance.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// TrialBalanceColumns splits a stored balance into debit and credit columns.
func TrialBalanceColumns(balance decimal.Decimal) (debit, credit decimal.Decimal) {
	if balance.IsNegative() {
		return decimal.Zero, balance.Neg()
	}
	return balance, decimal.Zero
}
