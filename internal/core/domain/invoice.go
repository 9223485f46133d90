package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes sales (customer) from purchase (supplier) invoices.
type InvoiceType string

const (
	SalesInvoice    InvoiceType = "SALES"
	PurchaseInvoice InvoiceType = "PURCHASE"
)

// IsValid reports whether t is a known invoice type.
func (t InvoiceType) IsValid() bool {
	return t == SalesInvoice || t == PurchaseInvoice
}

// InvoiceStatus is the lifecycle state of an invoice.
//
//	DRAFT --post--> POSTED --payment settles--> PAID
//	DRAFT --cancel--> CANCELLED
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoicePosted    InvoiceStatus = "POSTED"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoicePosted, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is a sales or purchase invoice. Totals are derived from the items
// when the invoice is created and are never edited afterwards.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	InvoiceType    InvoiceType     `json:"invoiceType"`
	Number         string          `json:"number"`
	CounterpartyID string          `json:"counterpartyID"` // customer or supplier
	InvoiceDate    time.Time       `json:"invoiceDate"`
	DueDate        time.Time       `json:"dueDate"`
	Status         InvoiceStatus   `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	JournalEntryID string          `json:"journalEntryID,omitempty"` // set once posted
	Items          []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}

// InvoiceItem is one invoice line. ProductID is set on sales lines and
// AccountID (the expense or asset account to debit) on purchase lines.
type InvoiceItem struct {
	ItemID    string          `json:"itemID"`
	InvoiceID string          `json:"invoiceID"`
	LineNo    int             `json:"lineNo"`
	ProductID string          `json:"productID,omitempty"`
	AccountID string          `json:"accountID,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"` // percent
	Amount    decimal.Decimal `json:"amount"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

var hundred = decimal.NewFromInt(100)

// ComputeLine fills Amount, TaxAmount and LineTotal from quantity, price and
// rate. No rounding is applied.
func (it *InvoiceItem) ComputeLine() {
	it.Amount = it.Quantity.Mul(it.UnitPrice)
	it.TaxAmount = it.Amount.Mul(it.TaxRate).Div(hundred)
	it.LineTotal = it.Amount.Add(it.TaxAmount)
}

// ComputeTotals recomputes every line and the invoice totals.
func (inv *Invoice) ComputeTotals() {
	subtotal, tax := decimal.Zero, decimal.Zero
	for i := range inv.Items {
		inv.Items[i].ComputeLine()
		subtotal = subtotal.Add(inv.Items[i].Amount)
		tax = tax.Add(inv.Items[i].TaxAmount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = tax
	inv.TotalAmount = subtotal.Add(tax)
}

// Outstanding is the amount still to be settled.
func (inv Invoice) Outstanding() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.AmountPaid)
}

// PaymentDirection returns the payment direction that settles this invoice.
func (t InvoiceType) PaymentDirection() PaymentDirection {
	if t == PurchaseInvoice {
		return PaymentSend
	}
	return PaymentReceive
}
