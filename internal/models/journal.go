package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	JournalEntryID string    `db:"journal_entry_id" gorm:"column:journal_entry_id;primaryKey"`
	EntryDate      time.Time `db:"entry_date" gorm:"column:entry_date;not null;index:idx_journal_entries_date_created,priority:1"`
	Reference      *string   `db:"reference" gorm:"column:reference"`
	Description    *string   `db:"description" gorm:"column:description"`
	Status         string    `db:"status" gorm:"column:status;not null"`
	AuditFields
}

func (JournalEntry) TableName() string { return "journal_entries" }

// JournalItem is the journal_items table row. One of Debit or Credit is zero.
type JournalItem struct {
	ItemID         string          `db:"item_id" gorm:"column:item_id;primaryKey"`
	JournalEntryID string          `db:"journal_entry_id" gorm:"column:journal_entry_id;not null;index"`
	LineNo         int             `db:"line_no" gorm:"column:line_no;not null"`
	AccountID      string          `db:"account_id" gorm:"column:account_id;not null;index"`
	Debit          decimal.Decimal `db:"debit" gorm:"column:debit;type:numeric;not null;default:0"`
	Credit         decimal.Decimal `db:"credit" gorm:"column:credit;type:numeric;not null;default:0"`
}

func (JournalItem) TableName() string { return "journal_items" }
