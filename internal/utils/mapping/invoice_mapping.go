package mapping

import (
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
)

// ToModelInvoice converts a domain Invoice header to its row.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		InvoiceType:    string(d.InvoiceType),
		Number:         d.Number,
		CounterpartyID: d.CounterpartyID,
		InvoiceDate:    d.InvoiceDate,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		TotalAmount:    d.TotalAmount,
		AmountPaid:     d.AmountPaid,
		JournalEntryID: optionalString(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts an invoices row and its item rows.
func ToDomainInvoice(m models.Invoice, items []models.InvoiceItem) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:      m.InvoiceID,
		InvoiceType:    domain.InvoiceType(m.InvoiceType),
		Number:         m.Number,
		CounterpartyID: m.CounterpartyID,
		InvoiceDate:    m.InvoiceDate,
		DueDate:        m.DueDate,
		Status:         domain.InvoiceStatus(m.Status),
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		TotalAmount:    m.TotalAmount,
		AmountPaid:     m.AmountPaid,
		JournalEntryID: derefString(m.JournalEntryID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if len(items) > 0 {
		d.Items = make([]domain.InvoiceItem, len(items))
		for i, it := range items {
			d.Items[i] = ToDomainInvoiceItem(it)
		}
	}
	return d
}

func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:    d.ItemID,
		InvoiceID: d.InvoiceID,
		LineNo:    d.LineNo,
		ProductID: optionalString(d.ProductID),
		AccountID: optionalString(d.AccountID),
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		TaxRate:   d.TaxRate,
		Amount:    d.Amount,
		TaxAmount: d.TaxAmount,
		LineTotal: d.LineTotal,
	}
}

func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:    m.ItemID,
		InvoiceID: m.InvoiceID,
		LineNo:    m.LineNo,
		ProductID: derefString(m.ProductID),
		AccountID: derefString(m.AccountID),
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		TaxRate:   m.TaxRate,
		Amount:    m.Amount,
		TaxAmount: m.TaxAmount,
		LineTotal: m.LineTotal,
	}
}
