package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// PurchaseOrder records goods bought from a supplier. It is created
// PENDING with its items and only moves stock when confirmed.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Supplier    string          `gorm:"type:varchar(200);not null"`
	OrderDate   time.Time       `gorm:"not null"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ConfirmedAt *time.Time
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one order line. The product name is captured at
// creation so the order stays readable after renames; quantity is in
// the item's declared unit, the subtotal is money with 2 decimals.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrder creates a pending purchase order
func NewPurchaseOrder(orderNumber, supplier string, orderDate time.Time) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if strings.TrimSpace(supplier) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Supplier:          strings.TrimSpace(supplier),
		OrderDate:         orderDate,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		Items:             make([]PurchaseOrderItem, 0),
	}, nil
}

// AddItem appends an order line and recalculates the total
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if err := validateOrderItem(quantity, unit, unitPrice); err != nil {
		return err
	}

	quantity = quantity.Round(3)
	unitPrice = unitPrice.Round(4)
	o.Items = append(o.Items, PurchaseOrderItem{
		ID:              uuid.New(),
		PurchaseOrderID: o.ID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		Unit:            unit,
		UnitPrice:       unitPrice,
		Subtotal:        quantity.Mul(unitPrice).Round(2),
		CreatedAt:       time.Now(),
	})

	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Confirm commits the order. Stock adjustment per item is performed by
// the application layer inside the same transaction scope.
func (o *PurchaseOrder) Confirm() error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order with no items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderConfirmedEvent(o))

	return nil
}

// CanDelete returns true while the order is still pending
func (o *PurchaseOrder) CanDelete() bool {
	return o.Status == OrderStatusPending
}

// FindItem returns the order line for a product, if present
func (o *PurchaseOrder) FindItem(productID uuid.UUID) (*PurchaseOrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i], true
		}
	}
	return nil, false
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	o.TotalAmount = total.Round(2)
}

func validateOrderItem(quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Item unit cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return nil
}
