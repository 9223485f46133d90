package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	portssvc "github.com/mohaaw/shop-erp-sub000/internal/core/ports/services"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
	"github.com/mohaaw/shop-erp-sub000/internal/observability/metrics"
	"github.com/shopspring/decimal"
)

// invoicePolicy holds what differs between sales and purchase invoices.
type invoicePolicy interface {
	// validateItem checks one request line before totals are computed.
	validateItem(ctx context.Context, lineNo int, item dto.InvoiceItemRequest) error
	// journalLines builds the balanced posting for a DRAFT invoice.
	journalLines(ctx context.Context, inv *domain.Invoice) ([]domain.JournalItem, error)
	description(inv *domain.Invoice) string
}

// invoiceService implements the shared DRAFT → POSTED lifecycle.
type invoiceService struct {
	BaseService
	invoiceType domain.InvoiceType
	policy      invoicePolicy
	txManager   portsrepo.TransactionManager
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	journal     portssvc.JournalPoster
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func newInvoiceService(invoiceType domain.InvoiceType, policy invoicePolicy, txManager portsrepo.TransactionManager, invoiceRepo portsrepo.InvoiceRepositoryFacade, journal portssvc.JournalPoster, options []ServiceOption) *invoiceService {
	svc := &invoiceService{
		invoiceType: invoiceType,
		policy:      policy,
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		journal:     journal,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" || strings.TrimSpace(req.CounterpartyID) == "" {
		return nil, fmt.Errorf("%w: invoice number and counterparty are required", apperrors.ErrValidation)
	}
	if req.InvoiceDate.IsZero() || req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: invoice date and due date are required", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.InvoiceDate) {
		return nil, fmt.Errorf("%w: due date is before invoice date", apperrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice must have at least one item", apperrors.ErrValidation)
	}

	invoiceID := uuid.NewString()
	items := make([]domain.InvoiceItem, len(req.Items))
	for i, itemReq := range req.Items {
		if !itemReq.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if itemReq.UnitPrice.IsNegative() || itemReq.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: item %d has a negative price or tax rate", apperrors.ErrValidation, i+1)
		}
		if err := s.policy.validateItem(ctx, i+1, itemReq); err != nil {
			return nil, err
		}
		items[i] = domain.InvoiceItem{
			ItemID:    uuid.NewString(),
			InvoiceID: invoiceID,
			LineNo:    i + 1,
			ProductID: strings.TrimSpace(itemReq.ProductID),
			AccountID: strings.TrimSpace(itemReq.AccountID),
			Quantity:  itemReq.Quantity,
			UnitPrice: itemReq.UnitPrice,
			TaxRate:   itemReq.TaxRate,
		}
	}

	invoice := domain.Invoice{
		InvoiceID:      invoiceID,
		InvoiceType:    s.invoiceType,
		Number:         number,
		CounterpartyID: strings.TrimSpace(req.CounterpartyID),
		InvoiceDate:    req.InvoiceDate,
		DueDate:        req.DueDate,
		Status:         domain.InvoiceDraft,
		AmountPaid:     decimal.Zero,
		Items:          items,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	invoice.ComputeTotals()
	if !invoice.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: invoice total must be positive", apperrors.ErrValidation)
	}

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		return s.invoiceRepo.SaveInvoice(txCtx, invoice)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save invoice", slog.String("number", number), slog.String("invoice_type", string(s.invoiceType)))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.Metrics.InvoiceTransition(string(s.invoiceType), string(domain.InvoiceDraft))
	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_type", string(s.invoiceType)),
		slog.String("total", invoice.TotalAmount.String()))
	return &invoice, nil
}

// PostInvoice records the invoice's journal entry and flips it to POSTED in
// one transaction. The status change is a compare-and-set on DRAFT, so a
// concurrent or repeated post fails with InvalidState and leaves no entry.
func (s *invoiceService) PostInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	var posted *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(txCtx, s.invoiceType, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceDraft {
			return &apperrors.InvalidStateError{
				Entity:  "invoice",
				ID:      invoiceID,
				Current: string(inv.Status),
				Message: "only draft invoices can be posted",
			}
		}

		lines, err := s.policy.journalLines(txCtx, inv)
		if err != nil {
			return err
		}

		entry, err := s.journal.Post(txCtx, domain.JournalEntry{
			EntryDate:   inv.InvoiceDate,
			Reference:   inv.Number,
			Description: s.policy.description(inv),
			Status:      domain.JournalPosted,
			Items:       lines,
		}, userID)
		if err != nil {
			return err
		}

		now := s.Now()
		if err := s.invoiceRepo.TransitionInvoiceStatus(txCtx, invoiceID, domain.InvoiceDraft, domain.InvoicePosted, entry.JournalEntryID, userID, now); err != nil {
			return err
		}
		inv.Status = domain.InvoicePosted
		inv.JournalEntryID = entry.JournalEntryID
		inv.LastUpdatedAt = now
		inv.LastUpdatedBy = userID
		posted = inv
		return nil
	})
	if err != nil {
		s.Metrics.PostingFailed(metrics.OperationPostInvoice, err)
		return nil, s.wrapLifecycleError(ctx, err, "Failed to post invoice", invoiceID)
	}

	s.Metrics.InvoiceTransition(string(s.invoiceType), string(domain.InvoicePosted))
	s.LogInfo(ctx, "Invoice posted successfully",
		slog.String("invoice_id", invoiceID),
		slog.String("journal_entry_id", posted.JournalEntryID))
	return posted, nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	var cancelled *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(txCtx, s.invoiceType, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceDraft {
			return &apperrors.InvalidStateError{
				Entity:  "invoice",
				ID:      invoiceID,
				Current: string(inv.Status),
				Message: "only draft invoices can be cancelled",
			}
		}
		now := s.Now()
		if err := s.invoiceRepo.TransitionInvoiceStatus(txCtx, invoiceID, domain.InvoiceDraft, domain.InvoiceCancelled, "", userID, now); err != nil {
			return err
		}
		inv.Status = domain.InvoiceCancelled
		inv.LastUpdatedAt = now
		inv.LastUpdatedBy = userID
		cancelled = inv
		return nil
	})
	if err != nil {
		return nil, s.wrapLifecycleError(ctx, err, "Failed to cancel invoice", invoiceID)
	}

	s.Metrics.InvoiceTransition(string(s.invoiceType), string(domain.InvoiceCancelled))
	s.LogInfo(ctx, "Invoice cancelled", slog.String("invoice_id", invoiceID))
	return cancelled, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, s.invoiceType, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *status)
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, s.invoiceType, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("invoice_type", string(s.invoiceType)))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// wrapLifecycleError passes domain errors through and logs unexpected ones.
func (s *invoiceService) wrapLifecycleError(ctx context.Context, err error, msg, invoiceID string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrChartOfAccountsIncomplete),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry):
		s.GetLogger(ctx).Warn(msg, slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return err
	}
	s.LogError(ctx, err, msg, slog.String("invoice_id", invoiceID))
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}
