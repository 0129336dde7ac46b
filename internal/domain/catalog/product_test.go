package catalog

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/shared/valueobject"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProductWithPrices("SPABC123", "矿泉水", "个",
		valueobject.NewMoneyFromFloat(10), valueobject.NewMoneyFromFloat(15))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		prodName string
		baseUnit string
		wantErr  string
	}{
		{name: "valid", code: "SPABC123", prodName: "矿泉水", baseUnit: "个"},
		{name: "empty code", code: "", prodName: "矿泉水", baseUnit: "个", wantErr: "INVALID_CODE"},
		{name: "empty name", code: "SPABC123", prodName: "  ", baseUnit: "个", wantErr: "INVALID_NAME"},
		{name: "empty base unit", code: "SPABC123", prodName: "矿泉水", baseUnit: "", wantErr: "INVALID_UNIT_NAME"},
		{name: "lowercase code uppercased", code: "spabc123", prodName: "矿泉水", baseUnit: "个"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.code, tt.prodName, tt.baseUnit)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, domainCode(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SPABC123", p.Code)
			assert.Equal(t, 1, p.GetVersion())
			assert.Len(t, p.GetDomainEvents(), 1)
		})
	}
}

func TestProductSetPrices(t *testing.T) {
	p := newTestProduct(t)

	err := p.SetPrices(valueobject.NewMoneyFromFloat(-1), valueobject.NewMoneyFromFloat(15))
	require.Error(t, err)
	assert.Equal(t, "INVALID_PRICE", domainCode(t, err))

	require.NoError(t, p.SetPrices(valueobject.NewMoneyFromFloat(12.34567), valueobject.NewMoneyFromFloat(20)))
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromFloat(12.3457)), "price rounds to 4 decimals, got %s", p.PurchasePrice)
}

func TestAddPackageUnit(t *testing.T) {
	p := newTestProduct(t)

	unit, err := p.AddPackageUnit("箱", decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "箱", unit.Name)
	assert.True(t, unit.ConversionRate.Equal(decimal.NewFromInt(10)))

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := p.AddPackageUnit("箱", decimal.NewFromInt(24), nil, nil)
		require.Error(t, err)
		assert.Equal(t, "PACKAGE_UNIT_EXISTS", domainCode(t, err))
	})

	t.Run("base unit name rejected", func(t *testing.T) {
		_, err := p.AddPackageUnit("个", decimal.NewFromInt(1), nil, nil)
		require.Error(t, err)
		assert.Equal(t, "PACKAGE_UNIT_EXISTS", domainCode(t, err))
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		_, err := p.AddPackageUnit("盒", decimal.Zero, nil, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_CONVERSION_RATE", domainCode(t, err))
	})

	t.Run("negative override rejected", func(t *testing.T) {
		bad := decimal.NewFromInt(-5)
		_, err := p.AddPackageUnit("盒", decimal.NewFromInt(6), &bad, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_PRICE", domainCode(t, err))
	})
}

func TestRemovePackageUnit(t *testing.T) {
	p := newTestProduct(t)
	_, err := p.AddPackageUnit("箱", decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)

	require.NoError(t, p.RemovePackageUnit("箱"))
	_, ok := p.FindUnit("箱")
	assert.False(t, ok)

	err = p.RemovePackageUnit("箱")
	require.Error(t, err)
	assert.Equal(t, "UNIT_NOT_FOUND", domainCode(t, err))
}

func TestUnitConversion(t *testing.T) {
	p := newTestProduct(t)
	_, err := p.AddPackageUnit("箱", decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)

	t.Run("base unit passes through", func(t *testing.T) {
		got, err := p.ToBaseUnits(decimal.NewFromFloat(2.5), "个")
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(2.5)))
	})

	t.Run("package unit multiplies", func(t *testing.T) {
		got, err := p.ToBaseUnits(decimal.NewFromInt(5), "箱")
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(50)))
	})

	t.Run("from base divides", func(t *testing.T) {
		got, err := p.FromBaseUnits(decimal.NewFromInt(50), "箱")
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(5)))
	})

	t.Run("unknown unit fails", func(t *testing.T) {
		_, err := p.ToBaseUnits(decimal.NewFromInt(1), "打")
		require.Error(t, err)
		assert.Equal(t, "UNIT_NOT_FOUND", domainCode(t, err))
	})
}

func TestUnitConversionRoundTrip(t *testing.T) {
	p := newTestProduct(t)
	_, err := p.AddPackageUnit("箱", decimal.NewFromFloat(12.5), nil, nil)
	require.NoError(t, err)

	quantities := []string{"1", "2.5", "0.333", "100", "7.125"}
	tolerance := decimal.NewFromFloat(0.001)

	for _, q := range quantities {
		qty, err := decimal.NewFromString(q)
		require.NoError(t, err)

		base, err := p.ToBaseUnits(qty, "箱")
		require.NoError(t, err)
		back, err := p.FromBaseUnits(base, "箱")
		require.NoError(t, err)

		diff := back.Sub(qty).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "round trip of %s drifted by %s", q, diff)
	}
}

func TestUnitPrice(t *testing.T) {
	p := newTestProduct(t)
	override := decimal.NewFromInt(140)
	_, err := p.AddPackageUnit("箱", decimal.NewFromInt(10), nil, &override)
	require.NoError(t, err)
	_, err = p.AddPackageUnit("盒", decimal.NewFromInt(6), nil, nil)
	require.NoError(t, err)

	tests := []struct {
		name      string
		unit      string
		priceType PriceType
		want      string
		wantErr   string
	}{
		{name: "base retail", unit: "个", priceType: PriceTypeRetail, want: "15"},
		{name: "base purchase", unit: "个", priceType: PriceTypePurchase, want: "10"},
		{name: "override wins", unit: "箱", priceType: PriceTypeRetail, want: "140"},
		{name: "computed from rate", unit: "盒", priceType: PriceTypeRetail, want: "90"},
		{name: "computed purchase", unit: "箱", priceType: PriceTypePurchase, want: "100"},
		{name: "unknown unit", unit: "打", priceType: PriceTypeRetail, wantErr: "UNIT_NOT_FOUND"},
		{name: "unknown price type", unit: "个", priceType: PriceType("wholesale"), wantErr: "INVALID_PRICE_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.UnitPrice(tt.unit, tt.priceType)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, domainCode(t, err))
				return
			}
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "want %s got %s", want, got)
		})
	}
}

func TestGenerateProductCode(t *testing.T) {
	pattern := regexp.MustCompile(`^SP[A-Z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateProductCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// collisions over 100 draws from 36^6 would be astonishing
	assert.Greater(t, len(seen), 95)

	p := newTestProduct(t)
	assert.Regexp(t, pattern, FallbackProductCode(p.ID))
}

func TestGetProfitMargin(t *testing.T) {
	p := newTestProduct(t)
	assert.True(t, p.GetProfitMargin().Equal(decimal.NewFromInt(50)))

	free, err := NewProduct("SPFREE01", "赠品", "个")
	require.NoError(t, err)
	assert.True(t, free.GetProfitMargin().IsZero())
}
