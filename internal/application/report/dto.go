package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummaryResponse totals confirmed sales over an inclusive range
type SalesSummaryResponse struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	OrderCount  int             `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// GrossProfitResponse is revenue minus cost at current purchase prices.
// ProfitMargin is the profit as a percentage of revenue, zero when
// there were no sales.
type GrossProfitResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

// TopSellingProductResponse is one entry in the best-seller ranking.
// QuantitySold is expressed in the product's base unit.
type TopSellingProductResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Unit         string          `json:"unit"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DateRangeRequest binds an inclusive from/to query range
type DateRangeRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// Range returns the bound dates as an inclusive range. To binds at
// midnight, so it is pushed to the last instant of its day to keep
// orders placed later that day in scope.
func (r DateRangeRequest) Range() (time.Time, time.Time) {
	return r.From, r.To.Add(24*time.Hour - time.Nanosecond)
}
