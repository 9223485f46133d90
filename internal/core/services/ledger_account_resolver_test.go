package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/core/services"
	"github.com/mohaaw/shop-erp-sub000/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolver_UsesConfiguredCode(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountByCode", mock.Anything, "1100").Return(&domain.Account{AccountID: "ar", Code: "1100"}, nil).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	acc, err := r.Receivable(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ar", acc.AccountID)
	repo.AssertNotCalled(t, "FindFirstAccountByType", mock.Anything, mock.Anything)
}

func TestResolver_FallsBackToAccountType(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountByCode", mock.Anything, "4000").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindFirstAccountByType", mock.Anything, domain.Income).Return(&domain.Account{AccountID: "sales", Code: "4100"}, nil).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	acc, err := r.Income(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "sales", acc.AccountID)
}

func TestResolver_GroupAccountAtCodeFallsBack(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountByCode", mock.Anything, "2000").Return(&domain.Account{AccountID: "liab-group", IsGroup: true}, nil).Once()
	repo.On("FindFirstAccountByType", mock.Anything, domain.Liability).Return(&domain.Account{AccountID: "ap"}, nil).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	acc, err := r.Payable(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ap", acc.AccountID)
}

func TestResolver_NothingOfTypeIsIncomplete(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountByCode", mock.Anything, "2100").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindFirstAccountByType", mock.Anything, domain.Liability).Return(nil, apperrors.ErrNotFound).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	_, err := r.TaxPayable(context.Background())

	var incomplete *apperrors.ChartOfAccountsIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{services.RoleTaxPayable}, incomplete.Missing)
}

func TestResolver_StorageErrorIsNotIncomplete(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountByCode", mock.Anything, "1100").Return(nil, errors.New("connection reset")).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	_, err := r.Receivable(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrChartOfAccountsIncomplete)
}

func TestResolver_CashPrefersNamedPostableAccount(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountsByNames", mock.Anything, []string{"Bank", "Cash"}).Return([]domain.Account{
		{AccountID: "bank-group", Name: "Bank", Code: "1010", IsGroup: true},
		{AccountID: "cash", Name: "Cash", Code: "1020"},
	}, nil).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	acc, err := r.Cash(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "cash", acc.AccountID)
}

func TestResolver_CashFallsBackToFirstAsset(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountsByNames", mock.Anything, []string{"Bank", "Cash"}).Return([]domain.Account{}, nil).Once()
	repo.On("FindFirstAccountByType", mock.Anything, domain.Asset).Return(&domain.Account{AccountID: "petty"}, nil).Once()
	r := services.NewLedgerAccountResolver(repo, services.DefaultResolverConfig())

	acc, err := r.Cash(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "petty", acc.AccountID)
}

func TestResolverConfigFrom_KeepsDefaultsForEmptyKeys(t *testing.T) {
	rc := services.ResolverConfigFrom(&config.Config{LedgerIncomeCode: "4500"})

	assert.Equal(t, "1100", rc.ReceivableCode)
	assert.Equal(t, "4500", rc.IncomeCode)
	assert.Equal(t, []string{"Bank", "Cash"}, rc.CashAccountNames)
	assert.Equal(t, services.DefaultResolverConfig(), services.ResolverConfigFrom(nil))
}
