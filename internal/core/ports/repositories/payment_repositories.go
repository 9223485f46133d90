package repositories

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
)

type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	// ListPaymentsByInvoice returns payments oldest first.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
