package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row shared by sales and purchase invoices.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id" gorm:"column:invoice_id;primaryKey"`
	InvoiceType    string          `db:"invoice_type" gorm:"column:invoice_type;not null;uniqueIndex:idx_invoices_type_number,priority:1"`
	Number         string          `db:"number" gorm:"column:number;not null;uniqueIndex:idx_invoices_type_number,priority:2"`
	CounterpartyID string          `db:"counterparty_id" gorm:"column:counterparty_id;not null"`
	InvoiceDate    time.Time       `db:"invoice_date" gorm:"column:invoice_date;not null"`
	DueDate        time.Time       `db:"due_date" gorm:"column:due_date;not null"`
	Status         string          `db:"status" gorm:"column:status;not null;index"`
	Subtotal       decimal.Decimal `db:"subtotal" gorm:"column:subtotal;type:numeric;not null"`
	TaxAmount      decimal.Decimal `db:"tax_amount" gorm:"column:tax_amount;type:numeric;not null"`
	TotalAmount    decimal.Decimal `db:"total_amount" gorm:"column:total_amount;type:numeric;not null"`
	AmountPaid     decimal.Decimal `db:"amount_paid" gorm:"column:amount_paid;type:numeric;not null;default:0"`
	JournalEntryID *string         `db:"journal_entry_id" gorm:"column:journal_entry_id"`
	AuditFields
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is the invoice_items table row.
type InvoiceItem struct {
	ItemID    string          `db:"item_id" gorm:"column:item_id;primaryKey"`
	InvoiceID string          `db:"invoice_id" gorm:"column:invoice_id;not null;index"`
	LineNo    int             `db:"line_no" gorm:"column:line_no;not null"`
	ProductID *string         `db:"product_id" gorm:"column:product_id"`
	AccountID *string         `db:"account_id" gorm:"column:account_id"`
	Quantity  decimal.Decimal `db:"quantity" gorm:"column:quantity;type:numeric;not null"`
	UnitPrice decimal.Decimal `db:"unit_price" gorm:"column:unit_price;type:numeric;not null"`
	TaxRate   decimal.Decimal `db:"tax_rate" gorm:"column:tax_rate;type:numeric;not null;default:0"`
	Amount    decimal.Decimal `db:"amount" gorm:"column:amount;type:numeric;not null"`
	TaxAmount decimal.Decimal `db:"tax_amount" gorm:"column:tax_amount;type:numeric;not null"`
	LineTotal decimal.Decimal `db:"line_total" gorm:"column:line_total;type:numeric;not null"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
