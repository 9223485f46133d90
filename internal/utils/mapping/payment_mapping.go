package mapping

import (
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
)

func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		PaymentDate:    d.PaymentDate,
		Direction:      string(d.Direction),
		Amount:         d.Amount,
		Method:         string(d.Method),
		Reference:      optionalString(d.Reference),
		InvoiceID:      d.InvoiceID,
		InvoiceType:    string(d.InvoiceType),
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		PaymentDate:    m.PaymentDate,
		Direction:      domain.PaymentDirection(m.Direction),
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		Reference:      derefString(m.Reference),
		InvoiceID:      m.InvoiceID,
		InvoiceType:    domain.InvoiceType(m.InvoiceType),
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
