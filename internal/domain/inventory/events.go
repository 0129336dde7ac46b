package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// Event types for the inventory context
const (
	EventInventoryAdjusted    = "inventory.record.adjusted"
	EventStockTakingCompleted = "inventory.stock_taking.completed"
)

// InventoryAdjustedEvent is raised for every stock movement
type InventoryAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType TransactionType `json:"transaction_type"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	NewQuantity     decimal.Decimal `json:"new_quantity"`
}

// NewInventoryAdjustedEvent creates an inventory adjusted event
func NewInventoryAdjustedEvent(record *InventoryRecord, transactionType TransactionType, change decimal.Decimal) *InventoryAdjustedEvent {
	return &InventoryAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInventoryAdjusted, "InventoryRecord", record.ID),
		ProductID:       record.ProductID,
		TransactionType: transactionType,
		QuantityChange:  change,
		NewQuantity:     record.Quantity,
	}
}

// StockTakingCompletedEvent is raised when a stock-take freezes
type StockTakingCompletedEvent struct {
	shared.BaseDomainEvent
	TakingNumber       string `json:"taking_number"`
	DifferingItemCount int    `json:"differing_item_count"`
}

// NewStockTakingCompletedEvent creates a stock taking completed event
func NewStockTakingCompletedEvent(st *StockTaking) *StockTakingCompletedEvent {
	return &StockTakingCompletedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventStockTakingCompleted, "StockTaking", st.ID),
		TakingNumber:       st.TakingNumber,
		DifferingItemCount: st.Summarize().DifferingItemCount,
	}
}
