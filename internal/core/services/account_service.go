package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/mohaaw/shop-erp-sub000/internal/observability/metrics"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// ServiceOption is a functional option shared by the ledger services.
type ServiceOption func(*BaseService)

// WithMetrics instruments a service with the ledger collectors.
func WithMetrics(m *metrics.LedgerMetrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func applyOptions(base *BaseService, options []ServiceOption) {
	for _, option := range options {
		option(base)
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: account name and code are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	parentID := ""
	if req.ParentAccountID != nil && strings.TrimSpace(*req.ParentAccountID) != "" {
		parentID = strings.TrimSpace(*req.ParentAccountID)
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent account %s: %w", parentID, apperrors.ErrNotFound)
			}
			s.LogError(ctx, err, "Failed to look up parent account", slog.String("parent_account_id", parentID))
			return nil, fmt.Errorf("failed to look up parent account: %w", err)
		}
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            name,
		Code:            code,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		IsGroup:         req.IsGroup,
		Balance:         decimal.Zero,
		AuditFields:     domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *accountService) GetChartOfAccounts(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	roots, orphaned := domain.BuildChartTree(accounts)
	if len(orphaned) > 0 {
		err := &apperrors.CyclicChartOfAccountsError{AccountIDs: orphaned}
		s.LogError(ctx, err, "Chart of accounts has a parent cycle", slog.Int("account_count", len(orphaned)))
		return nil, err
	}
	return roots, nil
}
