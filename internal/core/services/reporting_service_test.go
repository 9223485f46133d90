package services_test

import (
	"context"
	"testing"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportingChart() []domain.Account {
	return []domain.Account{
		{AccountID: "assets", Code: "1000", AccountType: domain.Asset, IsGroup: true},
		{AccountID: "bank", Code: "1010", AccountType: domain.Asset, Balance: dec("150")},
		{AccountID: "ap", Code: "2000", AccountType: domain.Liability, Balance: dec("-30")},
		{AccountID: "sales", Code: "4000", AccountType: domain.Income, Balance: dec("-200")},
		{AccountID: "rent", Code: "5000", AccountType: domain.Expense, Balance: dec("80")},
	}
}

func TestReporting_TrialBalanceSplitsColumns(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	accountRepo.On("ListAccounts", context.Background()).Return(reportingChart(), nil)
	svc := services.NewReportingService(accountRepo, new(MockReportingRepository))

	tb, err := svc.TrialBalance(context.Background())

	require.NoError(t, err)
	assert.Len(t, tb.Rows, 4, "group accounts are not listed")
	assert.Equal(t, "230", tb.TotalDebit.String())
	assert.Equal(t, "230", tb.TotalCredit.String())
}

func TestReporting_ProfitAndLoss(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	accountRepo.On("ListAccounts", context.Background()).Return(reportingChart(), nil)
	svc := services.NewReportingService(accountRepo, new(MockReportingRepository))

	report, err := svc.ProfitAndLoss(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Income, 1)
	assert.Equal(t, "200", report.Income[0].NetAmount.String())
	assert.Equal(t, "120", report.NetProfit.String())
}

func TestReporting_VerifyLedgerFlagsDrift(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	reportingRepo := new(MockReportingRepository)
	accountRepo.On("ListAccounts", ctx).Return(reportingChart(), nil)
	reportingRepo.On("SumJournalItemsByAccount", ctx).Return(map[string]decimal.Decimal{
		"bank":  dec("150"),
		"ap":    dec("-30"),
		"sales": dec("-200"),
		"rent":  dec("70"),
	}, nil)
	svc := services.NewReportingService(accountRepo, reportingRepo)

	v, err := svc.VerifyLedger(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, v.AccountsChecked)
	require.Len(t, v.Discrepancies, 1)
	assert.Equal(t, "rent", v.Discrepancies[0].AccountID)
	assert.Equal(t, "80", v.Discrepancies[0].StoredBalance.String())
	assert.Equal(t, "70", v.Discrepancies[0].LedgerBalance.String())
	assert.False(t, v.Consistent())
}
