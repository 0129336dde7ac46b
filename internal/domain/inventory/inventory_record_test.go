package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/backend/internal/domain/shared"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestNewInventoryRecord(t *testing.T) {
	productID := uuid.New()
	r := NewInventoryRecord(productID)

	assert.Equal(t, productID, r.ProductID)
	assert.True(t, r.Quantity.IsZero())
	assert.Equal(t, 1, r.GetVersion())
}

func TestInventoryRecordApply(t *testing.T) {
	tests := []struct {
		name            string
		start           string
		change          string
		transactionType TransactionType
		want            string
		wantErr         string
	}{
		{name: "purchase increases", start: "0", change: "50", transactionType: TransactionTypePurchase, want: "50"},
		{name: "sale decreases", start: "50", change: "-20", transactionType: TransactionTypeSale, want: "30"},
		{name: "sale below zero rejected", start: "10", change: "-10.001", transactionType: TransactionTypeSale, wantErr: "INSUFFICIENT_STOCK"},
		{name: "sale to exactly zero", start: "10", change: "-10", transactionType: TransactionTypeSale, want: "0"},
		{name: "return outbound rejected when short", start: "5", change: "-6", transactionType: TransactionTypeReturn, wantErr: "INSUFFICIENT_STOCK"},
		{name: "adjustment may go negative", start: "5", change: "-8", transactionType: TransactionTypeAdjustment, want: "-3"},
		{name: "result rounds to 3 decimals", start: "0", change: "1.23456", transactionType: TransactionTypePurchase, want: "1.235"},
		{name: "unknown type rejected", start: "0", change: "1", transactionType: TransactionType("TRANSFER"), wantErr: "INVALID_TRANSACTION_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewInventoryRecord(uuid.New())
			r.Quantity = mustDecimal(t, tt.start)
			startVersion := r.GetVersion()

			err := r.Apply(mustDecimal(t, tt.change), tt.transactionType)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, domainCode(t, err))
				assert.True(t, r.Quantity.Equal(mustDecimal(t, tt.start)), "failed apply must not mutate")
				assert.Equal(t, startVersion, r.GetVersion())
				return
			}
			require.NoError(t, err)
			assert.True(t, r.Quantity.Equal(mustDecimal(t, tt.want)), "want %s got %s", tt.want, r.Quantity)
			assert.Equal(t, startVersion+1, r.GetVersion())
		})
	}
}

func TestInventoryRecordPredicates(t *testing.T) {
	r := NewInventoryRecord(uuid.New())
	r.Quantity = decimal.NewFromInt(10)

	assert.True(t, r.CanCover(decimal.NewFromInt(10)))
	assert.False(t, r.CanCover(decimal.NewFromFloat(10.001)))

	// strict less-than: equal to the threshold is not low
	assert.False(t, r.IsLowStock(decimal.NewFromInt(10)))
	assert.True(t, r.IsLowStock(decimal.NewFromFloat(10.5)))
	assert.False(t, r.IsLowStock(decimal.NewFromInt(5)))
}

func TestNewInventoryTransaction(t *testing.T) {
	productID := uuid.New()
	orderID := uuid.New()

	tx := NewInventoryTransaction(productID, TransactionTypeSale,
		decimal.NewFromInt(-20), "个", decimal.NewFromInt(50), decimal.NewFromInt(30)).
		WithReference(orderID).
		WithNote("销售出库")

	assert.Equal(t, productID, tx.ProductID)
	assert.Equal(t, TransactionTypeSale, tx.TransactionType)
	assert.True(t, tx.QuantityChange.Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, "个", tx.Unit)
	require.NotNil(t, tx.ReferenceID)
	assert.Equal(t, orderID, *tx.ReferenceID)
	assert.Equal(t, "销售出库", tx.Note)
	assert.False(t, tx.IsInbound())
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
