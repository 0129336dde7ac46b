package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/inventory"
)

// AdjustInventoryRequest describes one stock movement. QuantityChange is
// signed and given in Unit; the ledger converts and stores base units.
type AdjustInventoryRequest struct {
	ProductID       uuid.UUID                 `json:"product_id" binding:"required"`
	QuantityChange  decimal.Decimal           `json:"quantity_change" binding:"required"`
	TransactionType inventory.TransactionType `json:"transaction_type" binding:"required"`
	Unit            string                    `json:"unit" binding:"required"`
	ReferenceID     *uuid.UUID                `json:"reference_id,omitempty"`
	Note            string                    `json:"note,omitempty"`
}

// SetQuantityRequest sets the current quantity to an absolute base-unit
// value, routed through the ledger as an adjustment
type SetQuantityRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Note        string          `json:"note,omitempty"`
}

// InventoryRecordResponse is the API shape of a current-stock row
type InventoryRecordResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LastUpdated time.Time       `json:"last_updated"`
}

// ToInventoryRecordResponse maps a record to its response shape
func ToInventoryRecordResponse(r *inventory.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		LastUpdated: r.UpdatedAt,
	}
}

// LowStockItemResponse is one row of the low-stock report, sorted by
// deficit descending
type LowStockItemResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	ProductName     string          `json:"product_name"`
	BaseUnit        string          `json:"base_unit"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	Threshold       decimal.Decimal `json:"threshold"`
	Deficit         decimal.Decimal `json:"deficit"`
}

// TransactionResponse is the API shape of a ledger entry
type TransactionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ProductID       uuid.UUID                 `json:"product_id"`
	TransactionType inventory.TransactionType `json:"transaction_type"`
	QuantityChange  decimal.Decimal           `json:"quantity_change"`
	Unit            string                    `json:"unit"`
	BalanceBefore   decimal.Decimal           `json:"balance_before"`
	BalanceAfter    decimal.Decimal           `json:"balance_after"`
	ReferenceID     *uuid.UUID                `json:"reference_id,omitempty"`
	Note            string                    `json:"note,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// ToTransactionResponse maps a ledger entry to its response shape
func ToTransactionResponse(t *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		TransactionType: t.TransactionType,
		QuantityChange:  t.QuantityChange,
		Unit:            t.Unit,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		ReferenceID:     t.ReferenceID,
		Note:            t.Note,
		CreatedAt:       t.CreatedAt,
	}
}

// ListTransactionsRequest narrows the ledger history listing
type ListTransactionsRequest struct {
	ProductID       *uuid.UUID                 `form:"product_id"`
	TransactionType *inventory.TransactionType `form:"transaction_type"`
	From            *time.Time                 `form:"from" time_format:"2006-01-02"`
	To              *time.Time                 `form:"to" time_format:"2006-01-02"`
	Page            int                        `form:"page"`
	PageSize        int                        `form:"page_size"`
}
