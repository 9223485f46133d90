package models

import (
	"github.com/shopspring/decimal"
)

// Account is the accounts table row. ParentAccountID is nil for roots.
type Account struct {
	AccountID       string          `db:"account_id" gorm:"column:account_id;primaryKey"`
	Name            string          `db:"name" gorm:"column:name;not null"`
	Code            string          `db:"code" gorm:"column:code;not null;uniqueIndex"`
	AccountType     string          `db:"account_type" gorm:"column:account_type;not null"`
	ParentAccountID *string         `db:"parent_account_id" gorm:"column:parent_account_id;index"`
	IsGroup         bool            `db:"is_group" gorm:"column:is_group;not null;default:false"`
	Balance         decimal.Decimal `db:"balance" gorm:"column:balance;type:numeric;not null;default:0"`
	AuditFields
}

func (Account) TableName() string { return "accounts" }
