package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, invoice_type, number, counterparty_id, invoice_date, due_date, status,
	subtotal, tax_amount, total_amount, amount_paid, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const invoiceItemColumns = `item_id, invoice_id, line_no, product_id, account_id,
	quantity, unit_price, tax_rate, amount, tax_amount, line_total`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceType,
		&m.Number,
		&m.CounterpartyID,
		&m.InvoiceDate,
		&m.DueDate,
		&m.Status,
		&m.Subtotal,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice inserts the header and its items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	q := r.conn(ctx)

	_, err := q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
		m.InvoiceID, m.InvoiceType, m.Number, m.CounterpartyID, m.InvoiceDate, m.DueDate, m.Status,
		m.Subtotal, m.TaxAmount, m.TotalAmount, m.AmountPaid, m.JournalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceType, m.Number)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range invoice.Items {
		mi := mapping.ToModelInvoiceItem(item)
		batch.Queue(`INSERT INTO invoice_items (`+invoiceItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			mi.ItemID, mi.InvoiceID, mi.LineNo, mi.ProductID, mi.AccountID,
			mi.Quantity, mi.UnitPrice, mi.TaxRate, mi.Amount, mi.TaxAmount, mi.LineTotal)
	}
	br := q.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert invoice item %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close invoice item batch: %w", err)
	}
	return batchErr
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceType domain.InvoiceType, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceType, invoiceID, "")
}

func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, invoiceType domain.InvoiceType, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceType, invoiceID, "FOR UPDATE")
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, invoiceType domain.InvoiceType, invoiceID, lock string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND invoice_type = $2 ` + lock + `;`
	m, err := scanInvoice(r.conn(ctx).QueryRow(ctx, query, invoiceID, string(invoiceType)))
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

// ListInvoices lists invoices of a type, optionally filtered by status, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, invoiceType domain.InvoiceType, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_type = $1`
	args := []any{string(invoiceType)}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY invoice_date DESC, created_at DESC, invoice_id DESC;`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s invoices: %w", invoiceType, err)
	}
	defer rows.Close()

	headers := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
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

func (r *PgxInvoiceRepository) findItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]models.InvoiceItem, error) {
	result := make(map[string][]models.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return result, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+invoiceItemColumns+`
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, line_no;`, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.InvoiceItem
		if err := rows.Scan(&m.ItemID, &m.InvoiceID, &m.LineNo, &m.ProductID, &m.AccountID,
			&m.Quantity, &m.UnitPrice, &m.TaxRate, &m.Amount, &m.TaxAmount, &m.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item row: %w", err)
		}
		result[m.InvoiceID] = append(result[m.InvoiceID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item rows: %w", err)
	}
	return result, nil
}

// TransitionInvoiceStatus is a compare-and-set on the status column.
func (r *PgxInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, journalEntryID string, userID string, now time.Time) error {
	var jeID *string
	if journalEntryID != "" {
		jeID = &journalEntryID
	}
	ct, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices
		SET status = $3, journal_entry_id = COALESCE($4, journal_entry_id), last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1 AND status = $2;`,
		invoiceID, string(from), string(to), jeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to move invoice %s to %s: %w", invoiceID, to, err)
	}
	if ct.RowsAffected() == 0 {
		return r.explainMissedTransition(ctx, invoiceID, from)
	}
	return nil
}

// RecordInvoicePayment stores the accumulated paid amount while the invoice is still POSTED.
func (r *PgxInvoiceRepository) RecordInvoicePayment(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) error {
	ct, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices
		SET amount_paid = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND status = $6;`,
		invoiceID, amountPaid, string(status), now, userID, string(domain.InvoicePosted))
	if err != nil {
		return fmt.Errorf("failed to record payment on invoice %s: %w", invoiceID, err)
	}
	if ct.RowsAffected() == 0 {
		return r.explainMissedTransition(ctx, invoiceID, domain.InvoicePosted)
	}
	return nil
}

func (r *PgxInvoiceRepository) explainMissedTransition(ctx context.Context, invoiceID string, expected domain.InvoiceStatus) error {
	var current string
	err := r.conn(ctx).QueryRow(ctx, `SELECT status FROM invoices WHERE invoice_id = $1;`, invoiceID).Scan(&current)
	if err != nil {
		return wrapQueryErr(err, "failed to read status of invoice %s", invoiceID)
	}
	return &apperrors.InvalidStateError{
		Entity:  "invoice",
		ID:      invoiceID,
		Current: current,
		Message: fmt.Sprintf("expected status %s", expected),
	}
}
