package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID      string          `db:"payment_id" gorm:"column:payment_id;primaryKey"`
	PaymentDate    time.Time       `db:"payment_date" gorm:"column:payment_date;not null"`
	Direction      string          `db:"direction" gorm:"column:direction;not null"`
	Amount         decimal.Decimal `db:"amount" gorm:"column:amount;type:numeric;not null"`
	Method         string          `db:"method" gorm:"column:method;not null"`
	Reference      *string         `db:"reference" gorm:"column:reference"`
	InvoiceID      string          `db:"invoice_id" gorm:"column:invoice_id;not null;index"`
	InvoiceType    string          `db:"invoice_type" gorm:"column:invoice_type;not null"`
	JournalEntryID string          `db:"journal_entry_id" gorm:"column:journal_entry_id;not null"`
	AuditFields
}

func (Payment) TableName() string { return "payments" }

// AllTables lists every row type, in dependency order, for schema creation.
func AllTables() []any {
	return []any{&Account{}, &JournalEntry{}, &JournalItem{}, &Invoice{}, &InvoiceItem{}, &Payment{}}
}
