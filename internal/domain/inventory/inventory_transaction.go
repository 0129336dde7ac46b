package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryTransaction is one append-only ledger entry. The quantity
// change is signed and always stored in the product's base unit, no
// matter which unit the caller specified. Entries are never mutated
// or deleted.
type InventoryTransaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;index"`
	QuantityChange  decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	ReferenceID     *uuid.UUID      `gorm:"type:uuid;index"`
	Note            string          `gorm:"type:varchar(500)"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a ledger entry recording a movement
// between the two balances
func NewInventoryTransaction(productID uuid.UUID, transactionType TransactionType, quantityChange decimal.Decimal, unit string, balanceBefore, balanceAfter decimal.Decimal) *InventoryTransaction {
	return &InventoryTransaction{
		ID:              uuid.New(),
		ProductID:       productID,
		TransactionType: transactionType,
		QuantityChange:  quantityChange.Round(3),
		Unit:            unit,
		BalanceBefore:   balanceBefore.Round(3),
		BalanceAfter:    balanceAfter.Round(3),
		CreatedAt:       time.Now(),
	}
}

// WithReference tags the entry with the originating order or stock-take id
func (t *InventoryTransaction) WithReference(referenceID uuid.UUID) *InventoryTransaction {
	t.ReferenceID = &referenceID
	return t
}

// WithNote attaches a human-readable note
func (t *InventoryTransaction) WithNote(note string) *InventoryTransaction {
	t.Note = note
	return t
}

// IsInbound returns true for movements that increased stock
func (t *InventoryTransaction) IsInbound() bool {
	return t.QuantityChange.IsPositive()
}
