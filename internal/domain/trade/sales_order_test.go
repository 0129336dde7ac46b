package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSalesOrder(t *testing.T) *SalesOrder {
	t.Helper()
	o, err := NewSalesOrder("SO202608300001", "张三", time.Now())
	require.NoError(t, err)
	require.NoError(t, o.AddItem(uuid.New(), "矿泉水", decimal.NewFromInt(2), "箱", decimal.NewFromInt(150)))
	return o
}

func TestNewSalesOrder(t *testing.T) {
	o, err := NewSalesOrder("SO202608300001", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Empty(t, o.CustomerName)

	_, err = NewSalesOrder("", "张三", time.Now())
	require.Error(t, err)
	assert.Equal(t, "INVALID_ORDER_NUMBER", domainCode(t, err))
}

func TestSalesOrderAddItem(t *testing.T) {
	o := newTestSalesOrder(t)

	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(300)), "total equals subtotal before discounts")

	item := o.Items[0]
	assert.True(t, item.OriginalPrice.Equal(item.UnitPrice), "original price captured at creation")
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name         string
		discountType DiscountType
		value        string
		wantDiscount string
		wantTotal    string
		wantErr      string
	}{
		{name: "ten percent", discountType: DiscountTypePercentage, value: "10", wantDiscount: "30", wantTotal: "270"},
		{name: "hundred percent", discountType: DiscountTypePercentage, value: "100", wantDiscount: "300", wantTotal: "0"},
		{name: "over hundred percent", discountType: DiscountTypePercentage, value: "100.01", wantErr: "INVALID_DISCOUNT"},
		{name: "negative percentage", discountType: DiscountTypePercentage, value: "-1", wantErr: "INVALID_DISCOUNT"},
		{name: "fixed amount", discountType: DiscountTypeFixed, value: "50", wantDiscount: "50", wantTotal: "250"},
		{name: "fixed above subtotal", discountType: DiscountTypeFixed, value: "300.01", wantErr: "INVALID_DISCOUNT"},
		{name: "unknown type", discountType: DiscountType("loyalty"), value: "5", wantErr: "INVALID_DISCOUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestSalesOrder(t)
			value, err := decimal.NewFromString(tt.value)
			require.NoError(t, err)

			err = o.ApplyDiscount(tt.discountType, value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, domainCode(t, err))
				return
			}
			require.NoError(t, err)
			assert.True(t, o.DiscountAmount.Equal(mustDec(t, tt.wantDiscount)), "discount: want %s got %s", tt.wantDiscount, o.DiscountAmount)
			assert.True(t, o.TotalAmount.Equal(mustDec(t, tt.wantTotal)), "total: want %s got %s", tt.wantTotal, o.TotalAmount)
		})
	}
}

func TestApplyRounding(t *testing.T) {
	o := newTestSalesOrder(t)
	require.NoError(t, o.ApplyDiscount(DiscountTypeFixed, decimal.NewFromInt(50)))

	require.NoError(t, o.ApplyRounding(decimal.NewFromFloat(0.5)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(249.5)))

	t.Run("rounding above discounted subtotal rejected", func(t *testing.T) {
		err := o.ApplyRounding(decimal.NewFromFloat(250.01))
		require.Error(t, err)
		assert.Equal(t, "INVALID_ROUNDING", domainCode(t, err))
	})

	t.Run("negative rounding rejected", func(t *testing.T) {
		err := o.ApplyRounding(decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Equal(t, "INVALID_ROUNDING", domainCode(t, err))
	})
}

func TestAdjustItemPrice(t *testing.T) {
	o := newTestSalesOrder(t)

	require.NoError(t, o.AdjustItemPrice(0, decimal.NewFromInt(120)))
	item := o.Items[0]
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, item.OriginalPrice.Equal(decimal.NewFromInt(150)), "original price untouched by override")
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(240)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(240)))

	t.Run("index out of range", func(t *testing.T) {
		for _, idx := range []int{-1, 1, 99} {
			err := o.AdjustItemPrice(idx, decimal.NewFromInt(10))
			require.Error(t, err)
			assert.Equal(t, "INVALID_ITEM_INDEX", domainCode(t, err))
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		err := o.AdjustItemPrice(0, decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Equal(t, "INVALID_PRICE", domainCode(t, err))
	})
}

func TestRecalculateKeepsDiscountAndRounding(t *testing.T) {
	o := newTestSalesOrder(t)
	require.NoError(t, o.ApplyDiscount(DiscountTypeFixed, decimal.NewFromInt(100)))
	require.NoError(t, o.ApplyRounding(decimal.NewFromInt(10)))

	require.NoError(t, o.AddItem(uuid.New(), "方便面", decimal.NewFromInt(10), "袋", decimal.NewFromInt(4)))

	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(340)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(230)), "340 - 100 - 10, got %s", o.TotalAmount)
}

func TestTotalFlooredAtZero(t *testing.T) {
	o := newTestSalesOrder(t)
	require.NoError(t, o.ApplyDiscount(DiscountTypeFixed, decimal.NewFromInt(300)))
	assert.True(t, o.TotalAmount.IsZero())

	// shrinking the subtotal below the standing discount floors at zero
	require.NoError(t, o.AdjustItemPrice(0, decimal.NewFromInt(100)))
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, o.TotalAmount.IsZero(), "total never negative, got %s", o.TotalAmount)
}

func TestSalesOrderConfirm(t *testing.T) {
	o := newTestSalesOrder(t)
	require.NoError(t, o.Confirm())
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	require.NotNil(t, o.ConfirmedAt)

	for _, mutation := range []struct {
		name string
		call func() error
	}{
		{"add item", func() error {
			return o.AddItem(uuid.New(), "x", decimal.NewFromInt(1), "个", decimal.NewFromInt(1))
		}},
		{"discount", func() error { return o.ApplyDiscount(DiscountTypePercentage, decimal.NewFromInt(10)) }},
		{"rounding", func() error { return o.ApplyRounding(decimal.NewFromInt(1)) }},
		{"price override", func() error { return o.AdjustItemPrice(0, decimal.NewFromInt(1)) }},
		{"confirm again", o.Confirm},
	} {
		t.Run(mutation.name, func(t *testing.T) {
			err := mutation.call()
			require.Error(t, err)
			assert.Equal(t, "ORDER_ALREADY_CONFIRMED", domainCode(t, err))
		})
	}
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
