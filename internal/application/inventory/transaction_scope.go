package inventory

import (
	"context"

	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed
// or rolled back atomically. Every multi-aggregate mutation (order
// confirmation, stock-take completion, product creation with its
// inventory record) runs through this.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. The inventory record is the one row every mutating flow
// reads then writes, which is why the scope is anchored here.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	InventoryRepo() inventory.InventoryRecordRepository
	TransactionRepo() inventory.InventoryTransactionRepository
	StockTakingRepo() inventory.StockTakingRepository
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	SalesOrderRepo() trade.SalesOrderRepository
	ReturnOrderRepo() trade.ReturnOrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	productRepo       catalog.ProductRepository
	inventoryRepo     inventory.InventoryRecordRepository
	transactionRepo   inventory.InventoryTransactionRepository
	stockTakingRepo   inventory.StockTakingRepository
	purchaseOrderRepo trade.PurchaseOrderRepository
	salesOrderRepo    trade.SalesOrderRepository
	returnOrderRepo   trade.ReturnOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	inventoryRepo inventory.InventoryRecordRepository,
	transactionRepo inventory.InventoryTransactionRepository,
	stockTakingRepo inventory.StockTakingRepository,
	purchaseOrderRepo trade.PurchaseOrderRepository,
	salesOrderRepo trade.SalesOrderRepository,
	returnOrderRepo trade.ReturnOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:       productRepo,
		inventoryRepo:     inventoryRepo,
		transactionRepo:   transactionRepo,
		stockTakingRepo:   stockTakingRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
		returnOrderRepo:   returnOrderRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// InventoryRepo returns the inventory record repository
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRecordRepository {
	return s.inventoryRepo
}

// TransactionRepo returns the inventory transaction repository
func (s *NoOpTransactionScope) TransactionRepo() inventory.InventoryTransactionRepository {
	return s.transactionRepo
}

// StockTakingRepo returns the stock taking repository
func (s *NoOpTransactionScope) StockTakingRepo() inventory.StockTakingRepository {
	return s.stockTakingRepo
}

// PurchaseOrderRepo returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

// SalesOrderRepo returns the sales order repository
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

// ReturnOrderRepo returns the return order repository
func (s *NoOpTransactionScope) ReturnOrderRepo() trade.ReturnOrderRepository {
	return s.returnOrderRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
