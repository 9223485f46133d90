package sqlite

import (
	"context"
	"fmt"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/mapping"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/pagination"
)

type GormJournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*GormJournalRepository)(nil)

// SaveJournalEntry stores times in UTC so that text ordering matches time ordering.
func (r *GormJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	m.EntryDate = m.EntryDate.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.LastUpdatedAt = m.LastUpdatedAt.UTC()

	db := r.conn(ctx)
	if err := db.Create(&m).Error; err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalEntryID, err)
	}
	if len(entry.Items) == 0 {
		return nil
	}
	items := make([]models.JournalItem, len(entry.Items))
	for i, item := range entry.Items {
		items[i] = mapping.ToModelJournalItem(item)
	}
	if err := db.Create(&items).Error; err != nil {
		return apperrors.NewAppError(500, "failed to insert journal items for "+m.JournalEntryID, err)
	}
	return nil
}

func (r *GormJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	if err := r.conn(ctx).Where("journal_entry_id = ?", journalEntryID).Take(&m).Error; err != nil {
		return nil, wrapQueryErr(err, "failed to find journal entry %s", journalEntryID)
	}
	items, err := r.findItemsByEntryIDs(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, items[journalEntryID])
	return &entry, nil
}

func (r *GormJournalRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := r.conn(ctx).Model(&models.JournalEntry{})
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %s", apperrors.ErrValidation, err.Error())
		}
		query = query.Where(
			"entry_date < ? OR (entry_date = ? AND (created_at < ? OR (created_at = ? AND journal_entry_id < ?)))",
			c.EntryDate.UTC(), c.EntryDate.UTC(), c.CreatedAt.UTC(), c.CreatedAt.UTC(), c.ID,
		)
	}

	var headers []models.JournalEntry
	err := query.
		Order("entry_date DESC").Order("created_at DESC").Order("journal_entry_id DESC").
		Limit(fetchLimit).
		Find(&headers).Error
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}

	var next *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		next = &token
		headers = headers[:limit]
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.JournalEntryID
	}
	items, err := r.findItemsByEntryIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, items[h.JournalEntryID])
	}
	return entries, next, nil
}

func (r *GormJournalRepository) findItemsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]models.JournalItem, error) {
	result := make(map[string][]models.JournalItem, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	var items []models.JournalItem
	err := r.conn(ctx).
		Where("journal_entry_id IN ?", entryIDs).
		Order("journal_entry_id").Order("line_no").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal items", err)
	}
	for _, it := range items {
		result[it.JournalEntryID] = append(result[it.JournalEntryID], it)
	}
	return result, nil
}
