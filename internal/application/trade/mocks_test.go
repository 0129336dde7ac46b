package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/trade"
)

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

// MockInventoryRecordRepository is a mock implementation of
// inventory.InventoryRecordRepository
type MockInventoryRecordRepository struct {
	mock.Mock
}

func (m *MockInventoryRecordRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.InventoryRecord, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).([]inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRecordRepository) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord, expectedVersion int) error {
	args := m.Called(ctx, record, expectedVersion)
	return args.Error(0)
}

// MockInventoryTransactionRepository is a mock implementation of
// inventory.InventoryTransactionRepository
type MockInventoryTransactionRepository struct {
	mock.Mock
}

func (m *MockInventoryTransactionRepository) Save(ctx context.Context, transaction *inventory.InventoryTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockInventoryTransactionRepository) FindByQuery(ctx context.Context, query inventory.TransactionQuery) ([]inventory.InventoryTransaction, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]inventory.InventoryTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryTransactionRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	args := m.Called(ctx, referenceID)
	return args.Get(0).([]inventory.InventoryTransaction), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of
// trade.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

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

// MockReturnOrderRepository is a mock implementation of
// trade.ReturnOrderRepository
type MockReturnOrderRepository struct {
	mock.Mock
}

func (m *MockReturnOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ReturnOrder), args.Error(1)
}

func (m *MockReturnOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.ReturnOrder), args.Error(1)
}

func (m *MockReturnOrderRepository) FindConfirmedByOriginalOrder(ctx context.Context, originalOrderID uuid.UUID) ([]trade.ReturnOrder, error) {
	args := m.Called(ctx, originalOrderID)
	return args.Get(0).([]trade.ReturnOrder), args.Error(1)
}

func (m *MockReturnOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockReturnOrderRepository) Save(ctx context.Context, order *trade.ReturnOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockReturnOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
