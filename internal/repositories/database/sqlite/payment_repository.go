package sqlite

import (
	"context"
	"fmt"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/mapping"
)

type GormPaymentRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentRepositoryFacade = (*GormPaymentRepository)(nil)

func (r *GormPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	if err := r.conn(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

func (r *GormPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var m models.Payment
	if err := r.conn(ctx).Where("payment_id = ?", paymentID).Take(&m).Error; err != nil {
		return nil, wrapQueryErr(err, "failed to find payment %s", paymentID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

func (r *GormPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	var ms []models.Payment
	err := r.conn(ctx).Where("invoice_id = ?", invoiceID).
		Order("payment_date").Order("created_at").Order("payment_id").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for invoice %s: %w", invoiceID, err)
	}
	payments := make([]domain.Payment, len(ms))
	for i, m := range ms {
		payments[i] = mapping.ToDomainPayment(m)
	}
	return payments, nil
}
