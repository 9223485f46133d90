package dto

import (
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	var res TrialBalanceResponse
	res.Rows = make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		res.Rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	res.Totals.Debit = tb.TotalDebit
	res.Totals.Credit = tb.TotalCredit
	return res
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

func toAccountAmountResponses(in []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(in))
	for i, a := range in {
		out[i] = AccountAmountResponse{AccountID: a.AccountID, Code: a.Code, Name: a.Name, Amount: a.NetAmount}
	}
	return out
}

func sumAmounts(in []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range in {
		total = total.Add(a.NetAmount)
	}
	return total
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	Income   []AccountAmountResponse `json:"income"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalIncome   decimal.Decimal `json:"totalIncome"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

func ToProfitAndLossResponse(r *domain.PAndLReport) ProfitAndLossResponse {
	var res ProfitAndLossResponse
	res.Income = toAccountAmountResponses(r.Income)
	res.Expenses = toAccountAmountResponses(r.Expenses)
	res.Summary.TotalIncome = sumAmounts(r.Income)
	res.Summary.TotalExpenses = sumAmounts(r.Expenses)
	res.Summary.NetProfit = r.NetProfit
	return res
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
}

func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	var res BalanceSheetResponse
	res.Assets = toAccountAmountResponses(r.Assets)
	res.Liabilities = toAccountAmountResponses(r.Liabilities)
	res.Equity = toAccountAmountResponses(r.Equity)
	res.Summary.TotalAssets = r.TotalAssets
	res.Summary.TotalLiabilities = r.TotalLiabilities
	res.Summary.TotalEquity = r.TotalEquity
	return res
}

// LedgerVerificationResponse reports stored balances that disagree with the journal.
type LedgerVerificationResponse struct {
	Consistent      bool                        `json:"consistent"`
	AccountsChecked int                         `json:"accountsChecked"`
	Discrepancies   []domain.BalanceDiscrepancy `json:"discrepancies"`
}

func ToLedgerVerificationResponse(v *domain.LedgerVerification) LedgerVerificationResponse {
	d := v.Discrepancies
	if d == nil {
		d = []domain.BalanceDiscrepancy{}
	}
	return LedgerVerificationResponse{
		Consistent:      v.Consistent(),
		AccountsChecked: v.AccountsChecked,
		Discrepancies:   d,
	}
}
