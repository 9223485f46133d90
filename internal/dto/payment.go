package dto

import (
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to apply a payment to an invoice.
type CreatePaymentRequest struct {
	PaymentDate time.Time               `json:"paymentDate" binding:"required"`
	Direction   domain.PaymentDirection `json:"direction" binding:"required,oneof=RECEIVE SEND"`
	Amount      decimal.Decimal         `json:"amount" binding:"decimal_gt0"`
	Method      domain.PaymentMethod    `json:"method" binding:"required,oneof=CASH BANK"`
	Reference   string                  `json:"reference"`
	InvoiceID   string                  `json:"invoiceID" binding:"required"`
	InvoiceType domain.InvoiceType      `json:"invoiceType" binding:"required,oneof=SALES PURCHASE"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string                  `json:"paymentID"`
	PaymentDate    time.Time               `json:"paymentDate"`
	Direction      domain.PaymentDirection `json:"direction"`
	Amount         decimal.Decimal         `json:"amount"`
	Method         domain.PaymentMethod    `json:"method"`
	Reference      string                  `json:"reference,omitempty"`
	InvoiceID      string                  `json:"invoiceID"`
	InvoiceType    domain.InvoiceType      `json:"invoiceType"`
	JournalEntryID string                  `json:"journalEntryID"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		PaymentDate:    p.PaymentDate,
		Direction:      p.Direction,
		Amount:         p.Amount,
		Method:         p.Method,
		Reference:      p.Reference,
		InvoiceID:      p.InvoiceID,
		InvoiceType:    p.InvoiceType,
		JournalEntryID: p.JournalEntryID,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}

// ListPaymentsResponse wraps the payments applied to one invoice.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}
