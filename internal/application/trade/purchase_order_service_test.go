package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	invapp "github.com/shoplite/backend/internal/application/inventory"
	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/shared/valueobject"
	"github.com/shoplite/backend/internal/domain/trade"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestProduct returns a product sold by piece with a carton of ten
func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProductWithPrices("SP000001", "矿泉水", "个",
		valueobject.NewMoneyFromFloat(10), valueobject.NewMoneyFromFloat(15))
	require.NoError(t, err)
	_, err = product.AddPackageUnit("箱", decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)
	return product
}

func newTestRecord(productID uuid.UUID, quantity string) *inventory.InventoryRecord {
	record := inventory.NewInventoryRecord(productID)
	record.Quantity = mustDec(quantity)
	return record
}

type tradeFixture struct {
	productRepo     *MockProductRepository
	inventoryRepo   *MockInventoryRecordRepository
	transactionRepo *MockInventoryTransactionRepository
	purchaseRepo    *MockPurchaseOrderRepository
	salesRepo       *MockSalesOrderRepository
	returnRepo      *MockReturnOrderRepository
	ledger          *invapp.InventoryService
	purchaseService *PurchaseOrderService
	salesService    *SalesOrderService
	returnService   *ReturnOrderService
}

func newTradeFixture() *tradeFixture {
	f := &tradeFixture{
		productRepo:     new(MockProductRepository),
		inventoryRepo:   new(MockInventoryRecordRepository),
		transactionRepo: new(MockInventoryTransactionRepository),
		purchaseRepo:    new(MockPurchaseOrderRepository),
		salesRepo:       new(MockSalesOrderRepository),
		returnRepo:      new(MockReturnOrderRepository),
	}
	scope := invapp.NewNoOpTransactionScope(f.productRepo, f.inventoryRepo, f.transactionRepo, nil,
		f.purchaseRepo, f.salesRepo, f.returnRepo)
	f.ledger = invapp.NewInventoryService(scope, f.productRepo, f.inventoryRepo, f.transactionRepo)
	f.purchaseService = NewPurchaseOrderService(scope, f.purchaseRepo, f.ledger)
	f.salesService = NewSalesOrderService(scope, f.salesRepo, f.productRepo, f.inventoryRepo, f.ledger)
	f.returnService = NewReturnOrderService(scope, f.returnRepo, f.purchaseRepo, f.salesRepo, f.productRepo, f.ledger)
	return f
}

func TestCreatePurchaseOrder(t *testing.T) {
	f := newTradeFixture()
	product := newTestProduct(t)

	f.purchaseRepo.On("ExistsByOrderNumber", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.purchaseRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

	resp, err := f.purchaseService.Create(context.Background(), CreatePurchaseOrderRequest{
		Supplier: "山泉供应商",
		Items: []OrderItemRequest{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5), Unit: "箱", UnitPrice: decimal.NewFromInt(90)},
		},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^PO\d{12}$`, resp.OrderNumber)
	assert.Equal(t, trade.OrderStatusPending, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(mustDec("450")), "got %s", resp.TotalAmount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "矿泉水", resp.Items[0].ProductName)
}

func TestCreatePurchaseOrderRejectsEmptyItems(t *testing.T) {
	f := newTradeFixture()

	_, err := f.purchaseService.Create(context.Background(), CreatePurchaseOrderRequest{Supplier: "山泉供应商"})
	assert.Equal(t, "EMPTY_ORDER", domainCode(t, err))
}

func TestCreatePurchaseOrderRejectsUnknownUnit(t *testing.T) {
	f := newTradeFixture()
	product := newTestProduct(t)

	f.purchaseRepo.On("ExistsByOrderNumber", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := f.purchaseService.Create(context.Background(), CreatePurchaseOrderRequest{
		Supplier: "山泉供应商",
		Items: []OrderItemRequest{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1), Unit: "托盘", UnitPrice: decimal.NewFromInt(90)},
		},
	})
	assert.Equal(t, "UNIT_NOT_FOUND", domainCode(t, err))
	f.purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestConfirmPurchaseOrderBooksInboundStock(t *testing.T) {
	f := newTradeFixture()
	product := newTestProduct(t)
	record := newTestRecord(product.ID, "0")

	order, err := trade.NewPurchaseOrder("PO202601150001", "山泉供应商", time.Now())
	require.NoError(t, err)
	require.NoError(t, order.AddItem(product.ID, product.Name, decimal.NewFromInt(5), "箱", decimal.NewFromInt(90)))

	f.purchaseRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.inventoryRepo.On("FindByProductID", mock.Anything, product.ID).Return(record, nil)
	f.inventoryRepo.On("SaveWithLock", mock.Anything, record, 1).Return(nil)

	var entry *inventory.InventoryTransaction
	f.transactionRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.InventoryTransaction")).
		Run(func(args mock.Arguments) {
			entry = args.Get(1).(*inventory.InventoryTransaction)
		}).Return(nil)
	f.purchaseRepo.On("Save", mock.Anything, order).Return(nil)

	resp, err := f.purchaseService.Confirm(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, trade.OrderStatusConfirmed, resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
	assert.True(t, record.Quantity.Equal(mustDec("50")), "five cartons of ten land as fifty pieces")
	require.NotNil(t, entry)
	assert.Equal(t, inventory.TransactionTypePurchase, entry.TransactionType)
	assert.True(t, entry.QuantityChange.Equal(mustDec("50")))
	assert.Equal(t, "个", entry.Unit)
	require.NotNil(t, entry.ReferenceID)
	assert.Equal(t, order.ID, *entry.ReferenceID)
}

func TestConfirmPurchaseOrderTwiceFails(t *testing.T) {
	f := newTradeFixture()
	product := newTestProduct(t)

	order, err := trade.NewPurchaseOrder("PO202601150002", "山泉供应商", time.Now())
	require.NoError(t, err)
	require.NoError(t, order.AddItem(product.ID, product.Name, decimal.NewFromInt(1), "个", decimal.NewFromInt(10)))
	require.NoError(t, order.Confirm())

	f.purchaseRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err = f.purchaseService.Confirm(context.Background(), order.ID)
	assert.Equal(t, "ORDER_ALREADY_CONFIRMED", domainCode(t, err))
	f.inventoryRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePurchaseOrder(t *testing.T) {
	f := newTradeFixture()
	product := newTestProduct(t)

	pending, err := trade.NewPurchaseOrder("PO202601150003", "山泉供应商", time.Now())
	require.NoError(t, err)

	confirmed, err := trade.NewPurchaseOrder("PO202601150004", "山泉供应商", time.Now())
	require.NoError(t, err)
	require.NoError(t, confirmed.AddItem(product.ID, product.Name, decimal.NewFromInt(1), "个", decimal.NewFromInt(10)))
	require.NoError(t, confirmed.Confirm())

	f.purchaseRepo.On("FindByID", mock.Anything, pending.ID).Return(pending, nil)
	f.purchaseRepo.On("FindByID", mock.Anything, confirmed.ID).Return(confirmed, nil)
	f.purchaseRepo.On("Delete", mock.Anything, pending.ID).Return(nil)

	require.NoError(t, f.purchaseService.Delete(context.Background(), pending.ID))

	err = f.purchaseService.Delete(context.Background(), confirmed.ID)
	assert.Equal(t, "ORDER_ALREADY_CONFIRMED", domainCode(t, err))
	f.purchaseRepo.AssertNumberOfCalls(t, "Delete", 1)
}
