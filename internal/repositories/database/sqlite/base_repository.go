// Package sqlite stores the ledger through gorm on an embedded SQLite
// database. It backs local development and the repository-level tests.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sqlitedriver "github.com/glebarez/sqlite"
	"github.com/mohaaw/shop-erp-sub000/internal/apperrors"
	portsrepo "github.com/mohaaw/shop-erp-sub000/internal/core/ports/repositories"
	"github.com/mohaaw/shop-erp-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type txKey struct{}

// Open opens dsn and creates the ledger tables. SQLite allows one writer, so
// the pool is capped at a single connection.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.AllTables()...); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return db, nil
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *gorm.DB
}

// conn returns the transaction carried by ctx, or the root handle.
func (r *BaseRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.DB.WithContext(ctx)
}

// GormTransactionManager implements portsrepo.TransactionManager with gorm.
type GormTransactionManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*GormTransactionManager)(nil)

// WithinTx runs fn in a transaction, joining one already carried by ctx.
func (m *GormTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func wrapQueryErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
