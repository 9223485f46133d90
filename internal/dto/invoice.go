package dto

import (
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one invoice line. Sales lines name a product and may
// carry a tax rate; purchase lines must name the account to debit.
type InvoiceItemRequest struct {
	ProductID string          `json:"productID"`
	AccountID string          `json:"accountID"`
	Quantity  decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"decimal_gte0"`
	TaxRate   decimal.Decimal `json:"taxRate" binding:"decimal_gte0"` // percent
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
type CreateInvoiceRequest struct {
	Number         string               `json:"number" binding:"required"`
	CounterpartyID string               `json:"counterpartyID" binding:"required"`
	InvoiceDate    time.Time            `json:"invoiceDate" binding:"required"`
	DueDate        time.Time            `json:"dueDate" binding:"required"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

type InvoiceItemResponse struct {
	ItemID    string          `json:"itemID"`
	LineNo    int             `json:"lineNo"`
	ProductID string          `json:"productID,omitempty"`
	AccountID string          `json:"accountID,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Amount    decimal.Decimal `json:"amount"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	InvoiceType    domain.InvoiceType    `json:"invoiceType"`
	Number         string                `json:"number"`
	CounterpartyID string                `json:"counterpartyID"`
	InvoiceDate    time.Time             `json:"invoiceDate"`
	DueDate        time.Time             `json:"dueDate"`
	Status         domain.InvoiceStatus  `json:"status"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	AmountPaid     decimal.Decimal       `json:"amountPaid"`
	JournalEntryID string                `json:"journalEntryID,omitempty"`
	Items          []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	var items []InvoiceItemResponse
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ItemID:    it.ItemID,
			LineNo:    it.LineNo,
			ProductID: it.ProductID,
			AccountID: it.AccountID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			Amount:    it.Amount,
			TaxAmount: it.TaxAmount,
			LineTotal: it.LineTotal,
		})
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		InvoiceType:    inv.InvoiceType,
		Number:         inv.Number,
		CounterpartyID: inv.CounterpartyID,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		Status:         inv.Status,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		TotalAmount:    inv.TotalAmount,
		AmountPaid:     inv.AmountPaid,
		JournalEntryID: inv.JournalEntryID,
		Items:          items,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=DRAFT POSTED PAID CANCELLED"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}
