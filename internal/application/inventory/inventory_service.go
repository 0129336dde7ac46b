package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
)

// InventoryService is the single authority over current stock. Every
// quantity change in the system funnels through its adjustment path,
// which persists the record and appends one ledger entry atomically.
type InventoryService struct {
	scope           TransactionScope
	productRepo     catalog.ProductRepository
	inventoryRepo   inventory.InventoryRecordRepository
	transactionRepo inventory.InventoryTransactionRepository
	eventPublisher  shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	scope TransactionScope,
	productRepo catalog.ProductRepository,
	inventoryRepo inventory.InventoryRecordRepository,
	transactionRepo inventory.InventoryTransactionRepository,
) *InventoryService {
	return &InventoryService{
		scope:           scope,
		productRepo:     productRepo,
		inventoryRepo:   inventoryRepo,
		transactionRepo: transactionRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Adjust applies one stock movement in its own transaction
func (s *InventoryService) Adjust(ctx context.Context, req AdjustInventoryRequest) (*InventoryRecordResponse, error) {
	var record *inventory.InventoryRecord

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = s.AdjustWithin(ctx, repos, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	response := ToInventoryRecordResponse(record)
	return &response, nil
}

// AdjustWithin applies one stock movement using repositories that are
// already bound to a caller-owned transaction. Order confirmation and
// stock-take completion use this to keep their whole mutation atomic.
func (s *InventoryService) AdjustWithin(ctx context.Context, repos TransactionalRepositories, req AdjustInventoryRequest) (*inventory.InventoryRecord, error) {
	if !req.TransactionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE",
			fmt.Sprintf("Unknown transaction type: %s", req.TransactionType))
	}

	product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	baseChange, err := product.ToBaseUnits(req.QuantityChange, req.Unit)
	if err != nil {
		return nil, err
	}

	record, err := repos.InventoryRepo().FindByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	balanceBefore := record.Quantity
	expectedVersion := record.GetVersion()
	if err := record.Apply(baseChange, req.TransactionType); err != nil {
		return nil, err
	}
	if err := repos.InventoryRepo().SaveWithLock(ctx, record, expectedVersion); err != nil {
		return nil, err
	}

	entry := inventory.NewInventoryTransaction(req.ProductID, req.TransactionType,
		baseChange, product.BaseUnit, balanceBefore, record.Quantity)
	if req.ReferenceID != nil {
		entry.WithReference(*req.ReferenceID)
	}
	if req.Note != "" {
		entry.WithNote(req.Note)
	}
	if err := repos.TransactionRepo().Save(ctx, entry); err != nil {
		return nil, err
	}

	record.AddDomainEvent(inventory.NewInventoryAdjustedEvent(record, req.TransactionType, baseChange))

	return record, nil
}

// ReconcileWithin records a stock-take difference as an adjustment entry
// and then pins the record's quantity to the counted value. The ledger
// entry carries the difference, never the absolute count.
func (s *InventoryService) ReconcileWithin(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, difference, target decimal.Decimal, referenceID uuid.UUID, note string) (*inventory.InventoryRecord, error) {
	product, err := repos.ProductRepo().FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	record, err := repos.InventoryRepo().FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	balanceBefore := record.Quantity
	expectedVersion := record.GetVersion()
	if err := record.Reconcile(target); err != nil {
		return nil, err
	}
	if err := repos.InventoryRepo().SaveWithLock(ctx, record, expectedVersion); err != nil {
		return nil, err
	}

	entry := inventory.NewInventoryTransaction(productID, inventory.TransactionTypeAdjustment,
		difference, product.BaseUnit, balanceBefore, record.Quantity).
		WithReference(referenceID)
	if note != "" {
		entry.WithNote(note)
	}
	if err := repos.TransactionRepo().Save(ctx, entry); err != nil {
		return nil, err
	}

	record.AddDomainEvent(inventory.NewInventoryAdjustedEvent(record, inventory.TransactionTypeAdjustment, difference))

	return record, nil
}

// SetQuantity sets the current quantity to an absolute base-unit value
// by routing the delta through the adjustment path
func (s *InventoryService) SetQuantity(ctx context.Context, req SetQuantityRequest) (*InventoryRecordResponse, error) {
	if req.NewQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	var record *inventory.InventoryRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.InventoryRepo().FindByProductID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		delta := req.NewQuantity.Sub(current.Quantity).Round(3)
		if delta.IsZero() {
			record = current
			return nil
		}

		record, err = s.AdjustWithin(ctx, repos, AdjustInventoryRequest{
			ProductID:       req.ProductID,
			QuantityChange:  delta,
			TransactionType: inventory.TransactionTypeAdjustment,
			Unit:            product.BaseUnit,
			Note:            req.Note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	response := ToInventoryRecordResponse(record)
	return &response, nil
}

// GetRecord returns the current-stock row for a product
func (s *InventoryService) GetRecord(ctx context.Context, productID uuid.UUID) (*InventoryRecordResponse, error) {
	record, err := s.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToInventoryRecordResponse(record)
	return &response, nil
}

// IsLowStock reports whether a product's stock is strictly below its
// configured threshold
func (s *InventoryService) IsLowStock(ctx context.Context, productID uuid.UUID) (bool, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	record, err := s.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return false, err
	}
	return record.IsLowStock(product.MinStockThreshold), nil
}

// GetLowStockProducts lists every product below its threshold, sorted by
// deficit descending
func (s *InventoryService) GetLowStockProducts(ctx context.Context) ([]LowStockItemResponse, error) {
	products, err := s.productRepo.Search(ctx, "", "")
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	records, err := s.inventoryRepo.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	quantities := make(map[uuid.UUID]decimal.Decimal, len(records))
	for i := range records {
		quantities[records[i].ProductID] = records[i].Quantity
	}

	var items []LowStockItemResponse
	for i := range products {
		p := &products[i]
		current := quantities[p.ID]
		if current.GreaterThanOrEqual(p.MinStockThreshold) {
			continue
		}
		items = append(items, LowStockItemResponse{
			ProductID:       p.ID,
			ProductCode:     p.Code,
			ProductName:     p.Name,
			BaseUnit:        p.BaseUnit,
			CurrentQuantity: current,
			Threshold:       p.MinStockThreshold,
			Deficit:         p.MinStockThreshold.Sub(current).Round(3),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Deficit.GreaterThan(items[j].Deficit)
	})

	return items, nil
}

// CheckStockAvailability reports whether current stock covers a quantity
// given in any of the product's units
func (s *InventoryService) CheckStockAvailability(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal, unit string) (bool, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	required, err := product.ToBaseUnits(quantity, unit)
	if err != nil {
		return false, err
	}
	record, err := s.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return false, err
	}
	return record.CanCover(required), nil
}

// ListTransactions pages through the ledger history
func (s *InventoryService) ListTransactions(ctx context.Context, req ListTransactionsRequest) (shared.Paginated[TransactionResponse], error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	entries, total, err := s.transactionRepo.FindByQuery(ctx, inventory.TransactionQuery{
		ProductID:       req.ProductID,
		TransactionType: req.TransactionType,
		From:            req.From,
		To:              req.To,
		Page:            req.Page,
		PageSize:        req.PageSize,
	})
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}

	responses := make([]TransactionResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToTransactionResponse(&entries[i]))
	}

	return shared.NewPaginated(responses, total, req.Page, req.PageSize), nil
}

func (s *InventoryService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil || aggregate == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
