package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid amount", input: "123.45", want: "123.45"},
		{name: "negative amount", input: "-10.00", want: "-10.00"},
		{name: "high precision kept", input: "0.12345", want: "0.12"},
		{name: "invalid string", input: "abc", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.50)
	b := NewMoneyFromFloat(25.25)

	assert.Equal(t, "125.75", a.Add(b).String())
	assert.Equal(t, "75.25", a.Subtract(b).String())
	assert.Equal(t, "201.00", a.Multiply(decimal.NewFromInt(2)).String())

	q, err := a.Divide(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "50.25", q.String())

	_, err = a.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoneyRoundingBoundary(t *testing.T) {
	// 3 * 33.333 keeps full precision until Round is applied
	unit, err := NewMoneyFromString("33.333")
	require.NoError(t, err)

	total := unit.Multiply(decimal.NewFromInt(3))
	assert.Equal(t, "99.999", total.StringFixed(3))
	assert.Equal(t, "100.00", total.Round(2).String())
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyFromFloat(10)
	b := NewMoneyFromFloat(20)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.Equals(NewMoneyFromFloat(10)))
	assert.False(t, a.Equals(b))
	assert.True(t, ZeroMoney().IsZero())
	assert.True(t, b.IsPositive())
	assert.True(t, a.Negate().IsNegative())
	assert.Equal(t, "10.00", a.Negate().Abs().String())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(88.80)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"88.8"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.50"))
	assert.Equal(t, "42.50", m.String())

	require.NoError(t, m.Scan([]byte("7.10")))
	assert.Equal(t, "7.10", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(true))
}

func TestMoneyCalculatePercentage(t *testing.T) {
	m := NewMoneyFromFloat(300)
	discount := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.Equal(t, "30.00", discount.Round(2).String())
}
