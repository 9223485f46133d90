package sqlite

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"github.com/mohaaw/shop-erp-sub000/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type GormAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*GormAccountRepository)(nil)

func (r *GormAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	if err := r.conn(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return &apperrors.DuplicateAccountCodeError{Code: m.Code}
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

func (r *GormAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var m models.Account
	if err := r.conn(ctx).Where("account_id = ?", accountID).Take(&m).Error; err != nil {
		return nil, wrapQueryErr(err, "failed to find account by ID %s", accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *GormAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	var m models.Account
	if err := r.conn(ctx).Where("code = ?", code).Take(&m).Error; err != nil {
		return nil, wrapQueryErr(err, "failed to find account by code %s", code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *GormAccountRepository) FindAccountsByNames(ctx context.Context, names []string) ([]domain.Account, error) {
	if len(names) == 0 {
		return []domain.Account{}, nil
	}
	var ms []models.Account
	if err := r.conn(ctx).Where("name IN ?", names).Order("code").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to query accounts by names: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *GormAccountRepository) FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	var m models.Account
	err := r.conn(ctx).
		Where("account_type = ? AND is_group = ?", string(accountType), false).
		Order("code").
		Take(&m).Error
	if err != nil {
		return nil, wrapQueryErr(err, "failed to find first %s account", accountType)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *GormAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var ms []models.Account
	if err := r.conn(ctx).Order("code").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// FindAccountsByIDsForUpdate reads the accounts inside the current
// transaction. SQLite has no row locks; its single writer serialises postings.
func (r *GormAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	var ms []models.Account
	if err := r.conn(ctx).Where("account_id IN ?", accountIDs).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}

	found := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		found[m.AccountID] = mapping.ToDomainAccount(m)
	}
	missing := []string{}
	for _, id := range accountIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return found, nil
}

// UpdateAccountBalances adds each delta to the stored balance. The sum is
// taken with decimal arithmetic because SQLite NUMERIC columns are floats.
func (r *GormAccountRepository) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	ids := make([]string, 0, len(balanceChanges))
	for id, delta := range balanceChanges {
		if !delta.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	db := r.conn(ctx)
	for _, id := range ids {
		var m models.Account
		if err := db.Select("account_id", "balance").Where("account_id = ?", id).Take(&m).Error; err != nil {
			return wrapQueryErr(err, "failed to read balance for account %s", id)
		}
		err := db.Model(&models.Account{}).
			Where("account_id = ?", id).
			Updates(map[string]any{
				"balance":         m.Balance.Add(balanceChanges[id]),
				"last_updated_at": now,
				"last_updated_by": userID,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update balance for account %s: %w", id, err)
		}
	}
	return nil
}
