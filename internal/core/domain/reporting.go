package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the full trial balance with column totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Income    []AccountAmount `json:"income"`    // Net income accounts
	Expenses  []AccountAmount `json:"expenses"`  // Net expense accounts
	NetProfit decimal.Decimal `json:"netProfit"` // Total income minus total expenses
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// BalanceDiscrepancy is an account whose stored balance disagrees with the
// sum of its journal items.
type BalanceDiscrepancy struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
}

// LedgerVerification is the outcome of recomputing every balance from items.
type LedgerVerification struct {
	AccountsChecked int                  `json:"accountsChecked"`
	Discrepancies   []BalanceDiscrepancy `json:"discrepancies"`
}

// Consistent reports whether every stored balance matched its items.
func (v LedgerVerification) Consistent() bool {
	return len(v.Discrepancies) == 0
}
