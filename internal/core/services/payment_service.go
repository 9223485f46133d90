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
)

var (
	ErrPaymentDirectionMismatch = errors.New("payment direction does not match invoice type")
	ErrPaymentExceedsBalance    = errors.New("payment exceeds the invoice's outstanding amount")
)

type paymentService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	journal     portssvc.JournalPoster
	resolver    portssvc.LedgerAccountResolver
}

// NewPaymentService creates the payment application service.
func NewPaymentService(txManager portsrepo.TransactionManager, paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, journal portssvc.JournalPoster, resolver portssvc.LedgerAccountResolver, options ...ServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		journal:     journal,
		resolver:    resolver,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment applies a receipt (sales) or disbursement (purchase) to a
// POSTED invoice. The journal entry, the payment row and the invoice's paid
// amount are written in one transaction; the invoice becomes PAID once the
// paid amount reaches its total.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	if err := validatePaymentRequest(req); err != nil {
		return nil, err
	}

	var payment domain.Payment
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(txCtx, req.InvoiceType, req.InvoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoicePosted {
			return &apperrors.InvalidStateError{
				Entity:  "invoice",
				ID:      inv.InvoiceID,
				Current: string(inv.Status),
				Message: "payments can only be applied to posted invoices",
			}
		}
		if req.Amount.GreaterThan(inv.Outstanding()) {
			return fmt.Errorf("%w: %w: outstanding %s, payment %s", apperrors.ErrValidation, ErrPaymentExceedsBalance,
				inv.Outstanding().String(), req.Amount.String())
		}

		lines, err := s.journalLines(txCtx, req)
		if err != nil {
			return err
		}

		reference := strings.TrimSpace(req.Reference)
		entry, err := s.journal.Post(txCtx, domain.JournalEntry{
			EntryDate:   req.PaymentDate,
			Reference:   firstNonEmpty(reference, inv.Number),
			Description: fmt.Sprintf("Payment %s for invoice %s", strings.ToLower(string(req.Direction)), inv.Number),
			Status:      domain.JournalPosted,
			Items:       lines,
		}, userID)
		if err != nil {
			return err
		}

		now := s.Now()
		payment = domain.Payment{
			PaymentID:      uuid.NewString(),
			PaymentDate:    req.PaymentDate,
			Direction:      req.Direction,
			Amount:         req.Amount,
			Method:         req.Method,
			Reference:      reference,
			InvoiceID:      inv.InvoiceID,
			InvoiceType:    inv.InvoiceType,
			JournalEntryID: entry.JournalEntryID,
			AuditFields:    domain.NewAuditFields(userID, now),
		}
		if err := s.paymentRepo.SavePayment(txCtx, payment); err != nil {
			return err
		}

		amountPaid := inv.AmountPaid.Add(req.Amount)
		status := domain.InvoicePosted
		if amountPaid.GreaterThanOrEqual(inv.TotalAmount) {
			status = domain.InvoicePaid
		}
		return s.invoiceRepo.RecordInvoicePayment(txCtx, inv.InvoiceID, amountPaid, status, userID, now)
	})
	if err != nil {
		s.Metrics.PostingFailed(metrics.OperationApplyPayment, err)
		switch {
		case errors.Is(err, apperrors.ErrNotFound),
			errors.Is(err, apperrors.ErrInvalidState),
			errors.Is(err, apperrors.ErrChartOfAccountsIncomplete),
			errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrUnbalancedEntry):
			s.GetLogger(ctx).Warn("Payment rejected", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to apply payment", slog.String("invoice_id", req.InvoiceID))
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	s.Metrics.PaymentApplied(string(payment.Direction))
	s.LogInfo(ctx, "Payment applied successfully",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", payment.InvoiceID),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

// journalLines builds Dr Cash / Cr Receivable for receipts and
// Dr Payable / Cr Cash for disbursements.
func (s *paymentService) journalLines(ctx context.Context, req dto.CreatePaymentRequest) ([]domain.JournalItem, error) {
	cash, cashErr := s.resolver.Cash(ctx)

	if req.Direction == domain.PaymentReceive {
		receivable, arErr := s.resolver.Receivable(ctx)
		if err := missingRoles(cashErr, arErr); err != nil {
			return nil, err
		}
		return []domain.JournalItem{
			domain.DebitLine(cash.AccountID, req.Amount),
			domain.CreditLine(receivable.AccountID, req.Amount),
		}, nil
	}

	payable, apErr := s.resolver.Payable(ctx)
	if err := missingRoles(cashErr, apErr); err != nil {
		return nil, err
	}
	return []domain.JournalItem{
		domain.DebitLine(payable.AccountID, req.Amount),
		domain.CreditLine(cash.AccountID, req.Amount),
	}, nil
}

func validatePaymentRequest(req dto.CreatePaymentRequest) error {
	switch {
	case strings.TrimSpace(req.InvoiceID) == "":
		return fmt.Errorf("%w: invoice id is required", apperrors.ErrValidation)
	case !req.InvoiceType.IsValid():
		return fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, req.InvoiceType)
	case !req.Direction.IsValid():
		return fmt.Errorf("%w: unknown payment direction %q", apperrors.ErrValidation, req.Direction)
	case !req.Method.IsValid():
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	case !req.Amount.IsPositive():
		return fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	case req.PaymentDate.IsZero():
		return fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	case req.InvoiceType.PaymentDirection() != req.Direction:
		return fmt.Errorf("%w: %w: %s payment against %s invoice", apperrors.ErrValidation, ErrPaymentDirectionMismatch, req.Direction, req.InvoiceType)
	}
	return nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
