package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection is RECEIVE for money in (sales) and SEND for money out (purchases).
type PaymentDirection string

const (
	PaymentReceive PaymentDirection = "RECEIVE"
	PaymentSend    PaymentDirection = "SEND"
)

// IsValid reports whether d is a known direction.
func (d PaymentDirection) IsValid() bool {
	return d == PaymentReceive || d == PaymentSend
}

// PaymentMethod records how the money moved.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodBank PaymentMethod = "BANK"
)

// IsValid reports whether m is a known method.
func (m PaymentMethod) IsValid() bool {
	return m == MethodCash || m == MethodBank
}

// Payment is a receipt or disbursement applied against one invoice.
type Payment struct {
	PaymentID      string           `json:"paymentID"`
	PaymentDate    time.Time        `json:"paymentDate"`
	Direction      PaymentDirection `json:"direction"`
	Amount         decimal.Decimal  `json:"amount"`
	Method         PaymentMethod    `json:"method"`
	Reference      string           `json:"reference,omitempty"`
	InvoiceID      string           `json:"invoiceID"`
	InvoiceType    InvoiceType      `json:"invoiceType"`
	JournalEntryID string           `json:"journalEntryID"`
	AuditFields
}
