package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnOrder(t *testing.T) {
	originalID := uuid.New()

	tests := []struct {
		name        string
		orderNumber string
		orderType   ReturnOrderType
		wantErr     string
	}{
		{name: "purchase return", orderNumber: "RO202608300001", orderType: ReturnOrderTypePurchase},
		{name: "sale return", orderNumber: "RO202608300002", orderType: ReturnOrderTypeSale},
		{name: "empty number", orderNumber: "", orderType: ReturnOrderTypeSale, wantErr: "INVALID_ORDER_NUMBER"},
		{name: "unknown type", orderNumber: "RO202608300003", orderType: ReturnOrderType("EXCHANGE"), wantErr: "INVALID_RETURN_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewReturnOrder(tt.orderNumber, originalID, tt.orderType)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, domainCode(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, originalID, o.OriginalOrderID)
			assert.Equal(t, OrderStatusPending, o.Status)
		})
	}
}

func TestReturnOrderStockDirection(t *testing.T) {
	saleReturn, err := NewReturnOrder("RO202608300001", uuid.New(), ReturnOrderTypeSale)
	require.NoError(t, err)
	assert.True(t, saleReturn.StockInbound(), "goods come back from the customer")

	purchaseReturn, err := NewReturnOrder("RO202608300002", uuid.New(), ReturnOrderTypePurchase)
	require.NoError(t, err)
	assert.False(t, purchaseReturn.StockInbound(), "goods go back to the supplier")
}

func TestReturnOrderLifecycle(t *testing.T) {
	o, err := NewReturnOrder("RO202608300001", uuid.New(), ReturnOrderTypeSale)
	require.NoError(t, err)

	t.Run("empty return cannot confirm", func(t *testing.T) {
		err := o.Confirm()
		require.Error(t, err)
		assert.Equal(t, "EMPTY_ORDER", domainCode(t, err))
	})

	require.NoError(t, o.AddItem(uuid.New(), "矿泉水", decimal.NewFromInt(1), "箱", decimal.NewFromInt(150)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(150)))

	require.NoError(t, o.Confirm())
	require.NotNil(t, o.ConfirmedAt)
	assert.False(t, o.CanDelete())

	err = o.AddItem(uuid.New(), "方便面", decimal.NewFromInt(1), "袋", decimal.NewFromInt(4))
	require.Error(t, err)
	assert.Equal(t, "ORDER_ALREADY_CONFIRMED", domainCode(t, err))
}
