package services

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
)

// InvoiceSvcFacade is the lifecycle of one invoice type (sales or purchase).
type InvoiceSvcFacade interface {
	// CreateInvoice computes totals and stores a DRAFT invoice with its items.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// PostInvoice mints the invoice's journal entry and moves it DRAFT → POSTED.
	PostInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// CancelInvoice moves a DRAFT invoice to CANCELLED.
	CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error)
}
