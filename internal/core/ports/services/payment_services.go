package services

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
)

// PaymentSvcFacade applies receipts and disbursements to posted invoices.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}
