package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that an operation's state-machine precondition failed.
var ErrInvalidState = errors.New("invalid state")

// ErrUnbalancedEntry indicates a journal entry whose debits and credits differ.
var ErrUnbalancedEntry = errors.New("journal entry is not balanced")

// ErrChartOfAccountsIncomplete indicates a required ledger account could not be resolved.
var ErrChartOfAccountsIncomplete = errors.New("chart of accounts is incomplete")

// ErrCyclicChartOfAccounts indicates parent links in the chart of accounts form a cycle.
var ErrCyclicChartOfAccounts = errors.New("chart of accounts contains a cycle")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)
