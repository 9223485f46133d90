package mapping

import (
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		EntryDate:      d.EntryDate,
		Reference:      optionalString(d.Reference),
		Description:    optionalString(d.Description),
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a journal_entries row and its item rows.
func ToDomainJournalEntry(m models.JournalEntry, items []models.JournalItem) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		EntryDate:      m.EntryDate,
		Reference:      derefString(m.Reference),
		Description:    derefString(m.Description),
		Status:         domain.JournalStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if len(items) > 0 {
		d.Items = make([]domain.JournalItem, len(items))
		for i, it := range items {
			d.Items[i] = ToDomainJournalItem(it)
		}
	}
	return d
}

// ToModelJournalItem flattens the tagged side into debit/credit columns.
func ToModelJournalItem(d domain.JournalItem) models.JournalItem {
	return models.JournalItem{
		ItemID:         d.ItemID,
		JournalEntryID: d.JournalEntryID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		Debit:          d.Debit(),
		Credit:         d.Credit(),
	}
}

// ToDomainJournalItem rebuilds the tagged side from the stored columns.
func ToDomainJournalItem(m models.JournalItem) domain.JournalItem {
	item := domain.JournalItem{
		ItemID:         m.ItemID,
		JournalEntryID: m.JournalEntryID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
	}
	if m.Credit.IsPositive() {
		item.Side, item.Amount = domain.Credit, m.Credit
	} else {
		item.Side, item.Amount = domain.Debit, m.Debit
	}
	return item
}
