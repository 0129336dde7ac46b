package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/shared/valueobject"
	"github.com/shoplite/backend/internal/domain/trade"
)

// MockSalesOrderRepository is a mock implementation of
// trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, keyword, location string) ([]catalog.Product, error) {
	args := m.Called(ctx, keyword, location)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newStatsProduct(t *testing.T, code, name, baseUnit string, purchase, retail float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProductWithPrices(code, name, baseUnit,
		valueobject.NewMoneyFromFloat(purchase), valueobject.NewMoneyFromFloat(retail))
	require.NoError(t, err)
	return product
}

func confirmedOrder(t *testing.T, number string, lines ...trade.SalesOrderItem) trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(number, "", time.Now())
	require.NoError(t, err)
	for _, line := range lines {
		require.NoError(t, order.AddItem(line.ProductID, line.ProductName, line.Quantity, line.Unit, line.UnitPrice))
	}
	require.NoError(t, order.Confirm())
	return *order
}

func statsRange() (time.Time, time.Time) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	return from, to
}

func TestSalesSummary(t *testing.T) {
	salesRepo := new(MockSalesOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewStatisticsService(salesRepo, productRepo)

	water := newStatsProduct(t, "SP000001", "矿泉水", "个", 10, 15)
	from, to := statsRange()

	orders := []trade.SalesOrder{
		confirmedOrder(t, "SO202601010001", trade.SalesOrderItem{
			ProductID: water.ID, ProductName: water.Name,
			Quantity: decimal.NewFromInt(10), Unit: "个", UnitPrice: mustDec("15"),
		}),
		confirmedOrder(t, "SO202601020001", trade.SalesOrderItem{
			ProductID: water.ID, ProductName: water.Name,
			Quantity: decimal.NewFromInt(4), Unit: "个", UnitPrice: mustDec("15"),
		}),
	}
	salesRepo.On("FindConfirmedBetween", mock.Anything, from, to).Return(orders, nil)

	summary, err := service.SalesSummary(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.OrderCount)
	assert.True(t, summary.TotalAmount.Equal(mustDec("210")))
}

func TestGrossProfitUsesCurrentPurchasePrice(t *testing.T) {
	salesRepo := new(MockSalesOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewStatisticsService(salesRepo, productRepo)

	water := newStatsProduct(t, "SP000001", "矿泉水", "个", 10, 15)
	from, to := statsRange()

	orders := []trade.SalesOrder{
		confirmedOrder(t, "SO202601010002", trade.SalesOrderItem{
			ProductID: water.ID, ProductName: water.Name,
			Quantity: decimal.NewFromInt(10), Unit: "个", UnitPrice: mustDec("15"),
		}),
	}
	salesRepo.On("FindConfirmedBetween", mock.Anything, from, to).Return(orders, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*water}, nil)

	profit, err := service.GrossProfit(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, profit.Revenue.Equal(mustDec("150")))
	assert.True(t, profit.Cost.Equal(mustDec("100")), "cost is valued at today's purchase price")
	assert.True(t, profit.GrossProfit.Equal(mustDec("50")))
	// 50 / 150 * 100
	assert.True(t, profit.ProfitMargin.Equal(mustDec("33.33")))
}

func TestGrossProfitMarginZeroWithoutSales(t *testing.T) {
	salesRepo := new(MockSalesOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewStatisticsService(salesRepo, productRepo)

	from, to := statsRange()
	salesRepo.On("FindConfirmedBetween", mock.Anything, from, to).Return([]trade.SalesOrder{}, nil)

	profit, err := service.GrossProfit(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, profit.Revenue.IsZero())
	assert.True(t, profit.GrossProfit.IsZero())
	assert.True(t, profit.ProfitMargin.IsZero())
}

func TestTopSellingProductsRanksByBaseQuantity(t *testing.T) {
	salesRepo := new(MockSalesOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewStatisticsService(salesRepo, productRepo)

	water := newStatsProduct(t, "SP000001", "矿泉水", "个", 10, 15)
	_, err := water.AddPackageUnit("箱", decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)
	cola := newStatsProduct(t, "SP000002", "可乐", "瓶", 2, 3)
	juice := newStatsProduct(t, "SP000003", "果汁", "瓶", 4, 6)
	from, to := statsRange()

	orders := []trade.SalesOrder{
		confirmedOrder(t, "SO202601010003",
			trade.SalesOrderItem{ProductID: cola.ID, ProductName: cola.Name,
				Quantity: decimal.NewFromInt(12), Unit: "瓶", UnitPrice: mustDec("3")},
			trade.SalesOrderItem{ProductID: water.ID, ProductName: water.Name,
				Quantity: decimal.NewFromInt(2), Unit: "箱", UnitPrice: mustDec("150")},
		),
		confirmedOrder(t, "SO202601020002",
			trade.SalesOrderItem{ProductID: juice.ID, ProductName: juice.Name,
				Quantity: decimal.NewFromInt(12), Unit: "瓶", UnitPrice: mustDec("6")},
		),
	}
	salesRepo.On("FindConfirmedBetween", mock.Anything, from, to).Return(orders, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*water, *cola, *juice}, nil)

	top, err := service.TopSellingProducts(context.Background(), from, to, 2)
	require.NoError(t, err)

	// two cartons of water outsell everything once converted to pieces
	require.Len(t, top, 2)
	assert.Equal(t, water.ID, top[0].ProductID)
	assert.True(t, top[0].QuantitySold.Equal(mustDec("20")))
	assert.Equal(t, "个", top[0].Unit)
	// cola and juice tie at twelve, cola appeared first and stays ahead
	assert.Equal(t, cola.ID, top[1].ProductID)
}

func TestTopSellingProductsEmptyRange(t *testing.T) {
	salesRepo := new(MockSalesOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewStatisticsService(salesRepo, productRepo)

	from, to := statsRange()
	salesRepo.On("FindConfirmedBetween", mock.Anything, from, to).Return([]trade.SalesOrder{}, nil)

	top, err := service.TopSellingProducts(context.Background(), from, to, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}
