package apperrors

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnbalancedEntryError reports the totals of a rejected journal entry.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is not balanced: debit %s, credit %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *UnbalancedEntryError) Is(target error) bool { return target == ErrUnbalancedEntry }

// DuplicateAccountCodeError reports an account code that is already taken.
type DuplicateAccountCodeError struct {
	Code string
}

func (e *DuplicateAccountCodeError) Error() string {
	return fmt.Sprintf("account code %q already exists", e.Code)
}

func (e *DuplicateAccountCodeError) Is(target error) bool { return target == ErrDuplicate }

// ChartOfAccountsIncompleteError names the ledger roles that could not be resolved.
type ChartOfAccountsIncompleteError struct {
	Missing []string
}

func (e *ChartOfAccountsIncompleteError) Error() string {
	return "chart of accounts is incomplete: missing " + strings.Join(e.Missing, ", ")
}

func (e *ChartOfAccountsIncompleteError) Is(target error) bool {
	return target == ErrChartOfAccountsIncomplete
}

// CyclicChartOfAccountsError lists the accounts caught in a parent cycle.
type CyclicChartOfAccountsError struct {
	AccountIDs []string
}

func (e *CyclicChartOfAccountsError) Error() string {
	return "chart of accounts contains a cycle through accounts " + strings.Join(e.AccountIDs, ", ")
}

func (e *CyclicChartOfAccountsError) Is(target error) bool { return target == ErrCyclicChartOfAccounts }

// InvalidStateError reports a lifecycle transition that is not allowed.
type InvalidStateError struct {
	Entity  string
	ID      string
	Current string
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is %s: %s", e.Entity, e.ID, e.Current, e.Message)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }
