package repositories

import (
	"context"
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoices. Every lookup is scoped
// to an invoice type; an id of the other type is reported as not found.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceType domain.InvoiceType, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate reads the invoice with its items and locks the header row.
	// Must be called within a transaction.
	FindInvoiceByIDForUpdate(ctx context.Context, invoiceType domain.InvoiceType, invoiceID string) (*domain.Invoice, error)

	// ListInvoices lists invoices of a type, optionally filtered by status, newest first.
	ListInvoices(ctx context.Context, invoiceType domain.InvoiceType, status *domain.InvoiceStatus) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice inserts the header and items. A taken (type, number) pair yields apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// TransitionInvoiceStatus moves an invoice from one status to another only
	// if it is still in from. Otherwise it returns apperrors.ErrInvalidState.
	// A non-empty journalEntryID is stored alongside.
	TransitionInvoiceStatus(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, journalEntryID string, userID string, now time.Time) error

	// RecordInvoicePayment stores the new paid amount and status of a POSTED invoice.
	// It returns apperrors.ErrInvalidState if the invoice is no longer POSTED.
	RecordInvoicePayment(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
