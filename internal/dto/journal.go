package dto

import (
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalItemRequest is one line in the two-column shape. Exactly one of
// Debit or Credit must be positive.
type JournalItemRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit" binding:"decimal_gte0"`
	Credit    decimal.Decimal `json:"credit" binding:"decimal_gte0"`
}

// PostJournalEntryRequest defines the data needed to post a journal entry.
type PostJournalEntryRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Reference   string               `json:"reference"`
	Description string               `json:"description"`
	Status      domain.JournalStatus `json:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"` // defaults to POSTED
	Items       []JournalItemRequest `json:"items" binding:"required,min=1,dive"`
}

// JournalItemResponse defines the data returned for a journal item.
type JournalItemResponse struct {
	ItemID    string          `json:"itemID"`
	LineNo    int             `json:"lineNo"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	EntryDate      time.Time             `json:"entryDate"`
	Reference      string                `json:"reference,omitempty"`
	Description    string                `json:"description,omitempty"`
	Status         domain.JournalStatus  `json:"status"`
	Items          []JournalItemResponse `json:"items"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	items := make([]JournalItemResponse, len(e.Items))
	for i, it := range e.Items {
		items[i] = JournalItemResponse{
			ItemID:    it.ItemID,
			LineNo:    it.LineNo,
			AccountID: it.AccountID,
			Debit:     it.Debit(),
			Credit:    it.Credit(),
		}
	}
	debit, credit := e.Totals()
	return JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		EntryDate:      e.EntryDate,
		Reference:      e.Reference,
		Description:    e.Description,
		Status:         e.Status,
		Items:          items,
		TotalDebit:     debit,
		TotalCredit:    credit,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ListJournalsParams defines query parameters for listing journal entries.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journal entries.
type ListJournalsResponse struct {
	Journals  []JournalEntryResponse `json:"journals"`
	NextToken *string                `json:"nextToken,omitempty"`
}
