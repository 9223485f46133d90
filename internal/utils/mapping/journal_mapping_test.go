package mapping

import (
	"testing"

	"github.com/mohaaw/shop-erp-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalItemColumns(t *testing.T) {
	credit := domain.CreditLine("income", decimal.NewFromInt(200))
	row := ToModelJournalItem(credit)
	assert.True(t, row.Debit.IsZero())
	assert.True(t, decimal.NewFromInt(200).Equal(row.Credit))

	back := ToDomainJournalItem(row)
	assert.Equal(t, domain.Credit, back.Side)
	assert.True(t, decimal.NewFromInt(200).Equal(back.Amount))
}

func TestAccountParentIsNullable(t *testing.T) {
	row := ToModelAccount(domain.Account{AccountID: "a", Code: "1000"})
	assert.Nil(t, row.ParentAccountID)

	row = ToModelAccount(domain.Account{AccountID: "b", ParentAccountID: "a"})
	if assert.NotNil(t, row.ParentAccountID) {
		assert.Equal(t, "a", *row.ParentAccountID)
	}
	assert.Equal(t, "a", ToDomainAccount(row).ParentAccountID)
}
