package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type GormInvoiceRepository struct {
	BaseRepository
}

var _ portsrepo.InvoiceRepositoryFacade = (*GormInvoiceRepository)(nil)

func (r *GormInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	db := r.conn(ctx)
	if err := db.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceType, m.Number)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	if len(invoice.Items) == 0 {
		return nil
	}
	items := make([]models.InvoiceItem, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = mapping.ToModelInvoiceItem(item)
	}
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to insert items for invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

func (r *GormInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceType domain.InvoiceType, invoiceID string) (*domain.Invoice, error) {
	var m models.Invoice
	err := r.conn(ctx).Where("invoice_id = ? AND invoice_type = ?", invoiceID, string(invoiceType)).Take(&m).Error
	if err != nil {
		return nil, wrapQueryErr(err, "failed to find invoice %s", invoiceID)
	}
	items, err := r.findItemsByInvoiceIDs(ctx, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainInvoice(m, items[invoiceID])
	return &invoice, nil
}

// FindInvoiceByIDForUpdate relies on the transaction for isolation; see
// GormAccountRepository.FindAccountsByIDsForUpdate.
func (r *GormInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, invoiceType domain.InvoiceType, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, invoiceType, invoiceID)
}

func (r *GormInvoiceRepository) ListInvoices(ctx context.Context, invoiceType domain.InvoiceType, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := r.conn(ctx).Where("invoice_type = ?", string(invoiceType))
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	var headers []models.Invoice
	err := query.Order("invoice_date DESC").Order("created_at DESC").Order("invoice_id DESC").Find(&headers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s invoices: %w", invoiceType, err)
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.InvoiceID
	}
	items, err := r.findItemsByInvoiceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, len(headers))
	for i, h := range headers {
		invoices[i] = mapping.ToDomainInvoice(h, items[h.InvoiceID])
	}
	return invoices, nil
}

func (r *GormInvoiceRepository) findItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]models.InvoiceItem, error) {
	result := make(map[string][]models.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return result, nil
	}
	var items []models.InvoiceItem
	if err := r.conn(ctx).Where("invoice_id IN ?", invoiceIDs).Order("invoice_id").Order("line_no").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	for _, it := range items {
		result[it.InvoiceID] = append(result[it.InvoiceID], it)
	}
	return result, nil
}

func (r *GormInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, journalEntryID string, userID string, now time.Time) error {
	updates := map[string]any{
		"status":          string(to),
		"last_updated_at": now,
		"last_updated_by": userID,
	}
	if journalEntryID != "" {
		updates["journal_entry_id"] = journalEntryID
	}
	res := r.conn(ctx).Model(&models.Invoice{}).
		Where("invoice_id = ? AND status = ?", invoiceID, string(from)).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to move invoice %s to %s: %w", invoiceID, to, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.explainMissedTransition(ctx, invoiceID, from)
	}
	return nil
}

func (r *GormInvoiceRepository) RecordInvoicePayment(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) error {
	res := r.conn(ctx).Model(&models.Invoice{}).
		Where("invoice_id = ? AND status = ?", invoiceID, string(domain.InvoicePosted)).
		Updates(map[string]any{
			"amount_paid":     amountPaid,
			"status":          string(status),
			"last_updated_at": now,
			"last_updated_by": userID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to record payment on invoice %s: %w", invoiceID, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.explainMissedTransition(ctx, invoiceID, domain.InvoicePosted)
	}
	return nil
}

func (r *GormInvoiceRepository) explainMissedTransition(ctx context.Context, invoiceID string, expected domain.InvoiceStatus) error {
	var m models.Invoice
	if err := r.conn(ctx).Select("invoice_id", "status").Where("invoice_id = ?", invoiceID).Take(&m).Error; err != nil {
		return wrapQueryErr(err, "failed to read status of invoice %s", invoiceID)
	}
	return &apperrors.InvalidStateError{
		Entity:  "invoice",
		ID:      invoiceID,
		Current: m.Status,
		Message: fmt.Sprintf("expected status %s", expected),
	}
}
