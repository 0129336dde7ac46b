package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// TransactionType classifies a stock movement
type TransactionType string

const (
	TransactionTypePurchase   TransactionType = "PURCHASE"
	TransactionTypeSale       TransactionType = "SALE"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
	TransactionTypeReturn     TransactionType = "RETURN"
)

// IsValid returns true if the transaction type is a known value
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeSale, TransactionTypeAdjustment, TransactionTypeReturn:
		return true
	}
	return false
}

// String returns the string representation
func (t TransactionType) String() string {
	return string(t)
}

// InventoryRecord holds the current stock quantity for one product.
// There is exactly one record per product and its quantity is always
// expressed in the product's base unit with 3 decimal places. All
// mutations go through Apply; everything else is historical evidence.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates a zero-quantity record for a product
func NewInventoryRecord(productID uuid.UUID) *InventoryRecord {
	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          decimal.Zero,
	}
}

// Apply adds a signed base-unit change to the current quantity.
// A result below zero is rejected unless the movement is an ADJUSTMENT,
// which may set any value reached from a stock-take reconciliation.
func (r *InventoryRecord) Apply(change decimal.Decimal, transactionType TransactionType) error {
	if !transactionType.IsValid() {
		return shared.NewDomainError("INVALID_TRANSACTION_TYPE", fmt.Sprintf("Unknown transaction type: %s", transactionType))
	}

	newQuantity := r.Quantity.Add(change).Round(3)
	if newQuantity.IsNegative() && transactionType != TransactionTypeAdjustment {
		return NewInsufficientStockError(r.ProductID, change.Abs(), r.Quantity)
	}

	r.Quantity = newQuantity
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Reconcile sets the quantity to the counted value from a completed
// stock-take. The corresponding ledger entry carries the difference.
func (r *InventoryRecord) Reconcile(target decimal.Decimal) error {
	if target.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Reconciled quantity cannot be negative")
	}

	r.Quantity = target.Round(3)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// CanCover returns true if current stock covers the required base quantity
func (r *InventoryRecord) CanCover(required decimal.Decimal) bool {
	return r.Quantity.GreaterThanOrEqual(required)
}

// IsLowStock returns true if the quantity is strictly below the threshold
func (r *InventoryRecord) IsLowStock(threshold decimal.Decimal) bool {
	return r.Quantity.LessThan(threshold)
}

// NewInsufficientStockError reports a stock movement the current quantity
// cannot cover
func NewInsufficientStockError(productID uuid.UUID, required, available decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for product %s: required %s, available %s", productID, required, available))
}
