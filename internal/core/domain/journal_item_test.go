package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFromColumns(t *testing.T) {
	tests := []struct {
		name    string
		debit   string
		credit  string
		side    EntrySide
		wantErr bool
	}{
		{name: "debit", debit: "10", credit: "0", side: Debit},
		{name: "credit", debit: "0", credit: "4.25", side: Credit},
		{name: "both sides", debit: "1", credit: "1", wantErr: true},
		{name: "neither side", debit: "0", credit: "0", wantErr: true},
		{name: "negative", debit: "-5", credit: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := LineFromColumns("acc", dec(tt.debit), dec(tt.credit))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.side, item.Side)
			assert.Equal(t, "acc", item.AccountID)
		})
	}
}

func TestBalanceChanges(t *testing.T) {
	items := []JournalItem{
		DebitLine("bank", dec("220")),
		CreditLine("ar", dec("200")),
		CreditLine("ar", dec("20")),
	}

	changes := BalanceChanges(items)

	assert.True(t, dec("220").Equal(changes["bank"]))
	assert.True(t, dec("-220").Equal(changes["ar"]))

	d, c := SumItems(items)
	assert.True(t, d.Equal(c))
	assert.True(t, decimal.Zero.Equal(items[0].Credit()))
}
