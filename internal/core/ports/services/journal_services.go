package services

import (
	"context"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/mohaaw/shop-erp-sub000/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves an entry with its items in line order.
	GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries, newest first.
	ListJournalEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalPoster is the journal engine entry point used by other services.
type JournalPoster interface {
	// Post validates and atomically records entry, adjusting every referenced
	// account balance by debit − credit. It joins a transaction already in ctx.
	Post(ctx context.Context, entry domain.JournalEntry, userID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	JournalPoster

	// PostJournalEntry converts two-column request lines and posts them.
	PostJournalEntry(ctx context.Context, req dto.PostJournalEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
