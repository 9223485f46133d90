package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/mohaaw/shop-erp-sub000/internal/observability/metrics"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/accounting"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

var (
	ErrGroupAccountNotPostable = errors.New("group accounts cannot be posted to")
	ErrEntryDateMissing        = errors.New("journal entry date is required")
)

// journalService is the journal engine: the only writer of account balances.
type journalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(txManager portsrepo.TransactionManager, journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		txManager:   txManager,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostJournalEntry converts the two-column request lines into tagged lines and posts them.
func (s *journalService) PostJournalEntry(ctx context.Context, req dto.PostJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	items := make([]domain.JournalItem, len(req.Items))
	for i, line := range req.Items {
		item, err := domain.LineFromColumns(line.AccountID, line.Debit, line.Credit)
		if err != nil {
			s.Metrics.PostingFailed(metrics.OperationPostJournal, apperrors.ErrValidation)
			return nil, fmt.Errorf("%w: item %d: %s", apperrors.ErrValidation, i+1, err.Error())
		}
		items[i] = item
	}

	return s.Post(ctx, domain.JournalEntry{
		EntryDate:   req.EntryDate,
		Reference:   req.Reference,
		Description: req.Description,
		Status:      req.Status,
		Items:       items,
	}, userID)
}

// Post validates and records entry. Account rows are locked, the header and
// items are written, and balances are incremented in one transaction; when
// ctx already carries a transaction the entry joins it.
func (s *journalService) Post(ctx context.Context, entry domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	if entry.Status == "" {
		entry.Status = domain.JournalPosted
	}
	if !entry.Status.IsValid() {
		return nil, s.failPost(ctx, fmt.Errorf("%w: unknown journal status %q", apperrors.ErrValidation, entry.Status))
	}
	if entry.EntryDate.IsZero() {
		return nil, s.failPost(ctx, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryDateMissing))
	}
	if err := accounting.ValidateJournalBalance(entry.Items); err != nil {
		return nil, s.failPost(ctx, err)
	}

	now := s.Now()
	entry.JournalEntryID = uuid.NewString()
	entry.AuditFields = domain.NewAuditFields(userID, now)
	items := make([]domain.JournalItem, len(entry.Items))
	for i, item := range entry.Items {
		item.ItemID = uuid.NewString()
		item.JournalEntryID = entry.JournalEntryID
		item.LineNo = i + 1
		items[i] = item
	}
	entry.Items = items

	balanceChanges := domain.BalanceChanges(entry.Items)
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	// Lock rows in a stable order so concurrent postings cannot deadlock.
	sort.Strings(accountIDs)

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(txCtx, accountIDs)
		if err != nil {
			return err
		}
		for _, id := range accountIDs {
			if accounts[id].IsGroup {
				return fmt.Errorf("%w: %w: account %s (%s)", apperrors.ErrValidation, ErrGroupAccountNotPostable, id, accounts[id].Code)
			}
		}
		if err := s.journalRepo.SaveJournalEntry(txCtx, entry); err != nil {
			return err
		}
		return s.accountRepo.UpdateAccountBalances(txCtx, balanceChanges, userID, now)
	})
	if err != nil {
		return nil, s.failPost(ctx, err)
	}

	s.Metrics.JournalPosted(string(entry.Status))
	s.LogInfo(ctx, "Journal entry posted successfully",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.Int("item_count", len(entry.Items)))
	return &entry, nil
}

func (s *journalService) failPost(ctx context.Context, err error) error {
	s.Metrics.PostingFailed(metrics.OperationPostJournal, err)
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrUnbalancedEntry) || errors.Is(err, apperrors.ErrNotFound) {
		s.GetLogger(ctx).Warn("Journal entry rejected", slog.String("error", err.Error()))
		return err
	}
	s.LogError(ctx, err, "Failed to post journal entry")
	return fmt.Errorf("failed to post journal entry: %w", err)
}

// GetJournalEntryByID retrieves a specific journal entry with its items.
func (s *journalService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}

	entries, nextToken, err := s.journalRepo.ListJournalEntries(ctx, limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Journals[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	s.LogDebug(ctx, "Journal entries listed", slog.Int("count", len(entries)))
	return resp, nil
}
