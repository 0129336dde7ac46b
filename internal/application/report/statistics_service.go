package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/trade"
)

// StatisticsService computes sales figures over confirmed sales orders.
// All date ranges are inclusive on both ends.
type StatisticsService struct {
	salesOrderRepo trade.SalesOrderRepository
	productRepo    catalog.ProductRepository
}

func NewStatisticsService(
	salesOrderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
) *StatisticsService {
	return &StatisticsService{
		salesOrderRepo: salesOrderRepo,
		productRepo:    productRepo,
	}
}

// SalesSummary totals confirmed sales orders in the range
func (s *StatisticsService) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResponse, error) {
	orders, err := s.salesOrderRepo.FindConfirmedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales orders: %w", err)
	}

	total := decimal.Zero
	for i := range orders {
		total = total.Add(orders[i].TotalAmount)
	}
	return &SalesSummaryResponse{
		From:        from,
		To:          to,
		OrderCount:  len(orders),
		TotalAmount: total.Round(2),
	}, nil
}

// GrossProfit computes revenue minus cost over the range. Cost is
// valued at each product's current purchase price per base unit, not
// the price paid when the stock came in.
func (s *StatisticsService) GrossProfit(ctx context.Context, from, to time.Time) (*GrossProfitResponse, error) {
	orders, err := s.salesOrderRepo.FindConfirmedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales orders: %w", err)
	}

	products, err := s.loadProducts(ctx, orders)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	cost := decimal.Zero
	for i := range orders {
		order := &orders[i]
		revenue = revenue.Add(order.TotalAmount)
		for j := range order.Items {
			item := &order.Items[j]
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			baseQuantity, err := product.ToBaseUnits(item.Quantity, item.Unit)
			if err != nil {
				return nil, err
			}
			cost = cost.Add(product.PurchasePrice.Mul(baseQuantity))
		}
	}

	revenue = revenue.Round(2)
	cost = cost.Round(2)
	profit := revenue.Sub(cost)

	margin := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		margin = profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &GrossProfitResponse{
		From:         from,
		To:           to,
		Revenue:      revenue,
		Cost:         cost,
		GrossProfit:  profit,
		ProfitMargin: margin,
	}, nil
}

// TopSellingProducts ranks products by base-unit quantity sold in the
// range, descending. Ties keep the order products first appeared in.
func (s *StatisticsService) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]TopSellingProductResponse, error) {
	orders, err := s.salesOrderRepo.FindConfirmedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales orders: %w", err)
	}

	products, err := s.loadProducts(ctx, orders)
	if err != nil {
		return nil, err
	}

	type tally struct {
		productID uuid.UUID
		name      string
		unit      string
		quantity  decimal.Decimal
		revenue   decimal.Decimal
	}
	index := make(map[uuid.UUID]int)
	tallies := make([]tally, 0)

	for i := range orders {
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			baseQuantity, err := product.ToBaseUnits(item.Quantity, item.Unit)
			if err != nil {
				return nil, err
			}
			pos, seen := index[item.ProductID]
			if !seen {
				pos = len(tallies)
				index[item.ProductID] = pos
				tallies = append(tallies, tally{
					productID: item.ProductID,
					name:      item.ProductName,
					unit:      product.BaseUnit,
					quantity:  decimal.Zero,
					revenue:   decimal.Zero,
				})
			}
			tallies[pos].quantity = tallies[pos].quantity.Add(baseQuantity)
			tallies[pos].revenue = tallies[pos].revenue.Add(item.Subtotal)
		}
	}

	sort.SliceStable(tallies, func(a, b int) bool {
		return tallies[a].quantity.GreaterThan(tallies[b].quantity)
	})
	if limit > 0 && limit < len(tallies) {
		tallies = tallies[:limit]
	}

	responses := make([]TopSellingProductResponse, 0, len(tallies))
	for _, t := range tallies {
		responses = append(responses, TopSellingProductResponse{
			ProductID:    t.productID,
			ProductName:  t.name,
			Unit:         t.unit,
			QuantitySold: t.quantity.Round(3),
			Revenue:      t.revenue.Round(2),
		})
	}
	return responses, nil
}

// loadProducts fetches every product referenced by the orders in one go
func (s *StatisticsService) loadProducts(ctx context.Context, orders []trade.SalesOrder) (map[uuid.UUID]*catalog.Product, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range orders {
		for j := range orders[i].Items {
			id := orders[i].Items[j].ProductID
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
