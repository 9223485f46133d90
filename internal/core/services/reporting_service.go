package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) postableAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accounts for report")
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	postable := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsGroup {
			postable = append(postable, a)
		}
	}
	return postable, nil
}

// TrialBalance generates a trial balance from the stored account balances
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	accounts, err := s.postableAccounts(ctx)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range accounts {
		debit, credit := accounting.TrialBalanceColumns(a.Balance)
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountCode: a.Code,
			AccountName: a.Name,
			AccountType: a.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}

	s.LogInfo(ctx, "Trial balance report generated successfully", slog.Int("row_count", len(tb.Rows)))
	return tb, nil
}

func (s *reportingService) amountsByType(ctx context.Context, types ...domain.AccountType) (map[domain.AccountType][]domain.AccountAmount, error) {
	accounts, err := s.postableAccounts(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[domain.AccountType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	out := make(map[domain.AccountType][]domain.AccountAmount, len(types))
	for _, t := range types {
		out[t] = []domain.AccountAmount{}
	}
	for _, a := range accounts {
		if !wanted[a.AccountType] {
			continue
		}
		net, err := accounting.NaturalBalance(a.Balance, a.AccountType)
		if err != nil {
			return nil, err
		}
		out[a.AccountType] = append(out[a.AccountType], domain.AccountAmount{
			AccountID: a.AccountID,
			Code:      a.Code,
			Name:      a.Name,
			NetAmount: net,
		})
	}
	return out, nil
}

func total(amounts []domain.AccountAmount) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a.NetAmount)
	}
	return sum
}

// ProfitAndLoss reports income and expense balances with net profit
func (s *reportingService) ProfitAndLoss(ctx context.Context) (*domain.PAndLReport, error) {
	byType, err := s.amountsByType(ctx, domain.Income, domain.Expense)
	if err != nil {
		return nil, err
	}
	report := &domain.PAndLReport{
		Income:    byType[domain.Income],
		Expenses:  byType[domain.Expense],
		NetProfit: total(byType[domain.Income]).Sub(total(byType[domain.Expense])),
	}
	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.Int("income_accounts", len(report.Income)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// BalanceSheet reports asset, liability and equity balances
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	byType, err := s.amountsByType(ctx, domain.Asset, domain.Liability, domain.Equity)
	if err != nil {
		return nil, err
	}
	report := &domain.BalanceSheetReport{
		Assets:           byType[domain.Asset],
		Liabilities:      byType[domain.Liability],
		Equity:           byType[domain.Equity],
		TotalAssets:      total(byType[domain.Asset]),
		TotalLiabilities: total(byType[domain.Liability]),
		TotalEquity:      total(byType[domain.Equity]),
	}
	s.LogInfo(ctx, "Balance sheet report generated successfully")
	return report, nil
}

// VerifyLedger checks balance == Σdebit − Σcredit for every account.
func (s *reportingService) VerifyLedger(ctx context.Context) (*domain.LedgerVerification, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve accounts for verification")
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	sums, err := s.reportingRepo.SumJournalItemsByAccount(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum journal items")
		return nil, fmt.Errorf("failed to sum journal items: %w", err)
	}

	result := &domain.LedgerVerification{AccountsChecked: len(accounts)}
	for _, a := range accounts {
		ledger, ok := sums[a.AccountID]
		if !ok {
			ledger = decimal.Zero
		}
		if !ledger.Equal(a.Balance) {
			result.Discrepancies = append(result.Discrepancies, domain.BalanceDiscrepancy{
				AccountID:     a.AccountID,
				AccountCode:   a.Code,
				StoredBalance: a.Balance,
				LedgerBalance: ledger,
			})
		}
	}

	if !result.Consistent() {
		s.GetLogger(ctx).Warn("Ledger verification found discrepancies",
			slog.Int("discrepancies", len(result.Discrepancies)))
	}
	return result, nil
}
