package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/mapping"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/pagination"
)

const journalEntryColumns = `journal_entry_id, entry_date, reference, description, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their items.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournalEntry inserts the header and queues one insert per item, in line order.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	q := r.conn(ctx)

	_, err := q.Exec(ctx, `
		INSERT INTO journal_entries (`+journalEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.JournalEntryID,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalEntryID, err)
	}

	itemQuery := `
		INSERT INTO journal_items (item_id, journal_entry_id, line_no, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range entry.Items {
		mi := mapping.ToModelJournalItem(item)
		batch.Queue(itemQuery, mi.ItemID, mi.JournalEntryID, mi.LineNo, mi.AccountID, mi.Debit, mi.Credit)
	}

	br := q.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = apperrors.NewAppError(500, fmt.Sprintf("failed to insert journal item %d", i+1), err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = apperrors.NewAppError(500, "failed to close journal item batch", err)
	}
	return batchErr
}

// FindJournalEntryByID retrieves an entry with its items in line order.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	m, err := scanJournalEntry(r.conn(ctx).QueryRow(ctx, query, journalEntryID))
	if err != nil {
		return nil, wrapQueryErr(err, "failed to find journal entry %s", journalEntryID)
	}

	items, err := r.findItemsByEntryIDs(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, items[journalEntryID])
	return &entry, nil
}

// ListJournalEntries retrieves entries newest first using token-based pagination.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %s", apperrors.ErrValidation, decodeErr.Error())
		}
		rows, err = r.conn(ctx).Query(ctx, `
			SELECT `+journalEntryColumns+`
			FROM journal_entries
			WHERE (entry_date, created_at, journal_entry_id) < ($1, $2, $3)
			ORDER BY entry_date DESC, created_at DESC, journal_entry_id DESC
			LIMIT $4;`,
			cursor.EntryDate, cursor.CreatedAt, cursor.ID, fetchLimit)
	} else {
		rows, err = r.conn(ctx).Query(ctx, `
			SELECT `+journalEntryColumns+`
			FROM journal_entries
			ORDER BY entry_date DESC, created_at DESC, journal_entry_id DESC
			LIMIT $1;`,
			fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	headers := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		nextTokenVal = &token
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
	return entries, nextTokenVal, nil
}

func (r *PgxJournalRepository) findItemsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]models.JournalItem, error) {
	result := make(map[string][]models.JournalItem, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT item_id, journal_entry_id, line_no, account_id, debit, credit
		FROM journal_items
		WHERE journal_entry_id = ANY($1)
		ORDER BY journal_entry_id, line_no;`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalItem
		if err := rows.Scan(&m.ItemID, &m.JournalEntryID, &m.LineNo, &m.AccountID, &m.Debit, &m.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal item row", err)
		}
		result[m.JournalEntryID] = append(result[m.JournalEntryID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal item rows", err)
	}
	return result, nil
}
