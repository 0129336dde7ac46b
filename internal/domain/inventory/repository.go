package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/backend/internal/domain/shared"
)

// InventoryRecordRepository defines persistence for the one-row-per-
// product current stock. SaveWithLock performs an optimistic version
// check and fails with ErrConcurrencyConflict on a stale write.
type InventoryRecordRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*InventoryRecord, error)
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]InventoryRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryRecord, error)
	Save(ctx context.Context, record *InventoryRecord) error
	SaveWithLock(ctx context.Context, record *InventoryRecord, expectedVersion int) error
}

// TransactionQuery narrows a ledger history listing
type TransactionQuery struct {
	ProductID       *uuid.UUID
	TransactionType *TransactionType
	From            *time.Time
	To              *time.Time
	Page            int
	PageSize        int
}

// InventoryTransactionRepository defines persistence for the append-only
// ledger. Entries are only ever inserted.
type InventoryTransactionRepository interface {
	Save(ctx context.Context, transaction *InventoryTransaction) error
	FindByQuery(ctx context.Context, query TransactionQuery) ([]InventoryTransaction, int64, error)
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]InventoryTransaction, error)
}

// StockTakingRepository defines persistence for stock-takes. FindByID
// loads the item snapshot.
type StockTakingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockTaking, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockTaking, error)
	ExistsByNumber(ctx context.Context, takingNumber string) (bool, error)
	Save(ctx context.Context, taking *StockTaking) error
}
