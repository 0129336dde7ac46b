package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// DiscountType selects how a sales order discount value is interpreted
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// SalesOrder records goods sold to a customer. While PENDING the items,
// discount, rounding and per-item prices are freely mutable; once
// CONFIRMED the order rejects all mutation. The invariant maintained by
// every mutation is totalAmount = max(0, subtotal - discount - rounding).
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerName   string          `gorm:"type:varchar(200)"`
	OrderDate      time.Time       `gorm:"not null"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RoundingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ConfirmedAt    *time.Time
	Items          []SalesOrderItem `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderItem is one order line. OriginalPrice keeps the auto-derived
// price even after a manual override of UnitPrice.
type SalesOrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalesOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// NewSalesOrder creates a pending sales order. The customer name is
// optional for walk-in sales.
func NewSalesOrder(orderNumber, customerName string, orderDate time.Time) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}

	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerName:      strings.TrimSpace(customerName),
		OrderDate:         orderDate,
		Status:            OrderStatusPending,
		Subtotal:          decimal.Zero,
		DiscountAmount:    decimal.Zero,
		RoundingAmount:    decimal.Zero,
		TotalAmount:       decimal.Zero,
		Items:             make([]SalesOrderItem, 0),
	}, nil
}

// AddItem appends an order line. The unit price at creation also becomes
// the item's original price; stock sufficiency is verified by the
// application layer before the item is accepted.
func (o *SalesOrder) AddItem(productID uuid.UUID, productName string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if err := validateOrderItem(quantity, unit, unitPrice); err != nil {
		return err
	}

	quantity = quantity.Round(3)
	unitPrice = unitPrice.Round(4)
	o.Items = append(o.Items, SalesOrderItem{
		ID:            uuid.New(),
		SalesOrderID:  o.ID,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		Unit:          unit,
		UnitPrice:     unitPrice,
		OriginalPrice: unitPrice,
		Subtotal:      quantity.Mul(unitPrice).Round(2),
		CreatedAt:     time.Now(),
	})

	o.recalculateAmounts()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ApplyDiscount sets the order discount. A percentage value must lie in
// [0, 100]; a fixed value in [0, subtotal].
func (o *SalesOrder) ApplyDiscount(discountType DiscountType, value decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount value cannot be negative")
	}

	switch discountType {
	case DiscountTypePercentage:
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage cannot exceed 100")
		}
		o.DiscountAmount = o.Subtotal.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		if value.GreaterThan(o.Subtotal) {
			return shared.NewDomainError("INVALID_DISCOUNT", "Fixed discount cannot exceed the subtotal")
		}
		o.DiscountAmount = value.Round(2)
	default:
		return shared.NewDomainError("INVALID_DISCOUNT", fmt.Sprintf("Unknown discount type: %s", discountType))
	}

	o.recalculateAmounts()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ApplyRounding knocks a small amount off the payable total, bounded by
// what remains after the discount
func (o *SalesOrder) ApplyRounding(amount decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_ROUNDING", "Rounding amount cannot be negative")
	}
	if amount.GreaterThan(o.Subtotal.Sub(o.DiscountAmount)) {
		return shared.NewDomainError("INVALID_ROUNDING", "Rounding amount cannot exceed the discounted subtotal")
	}

	o.RoundingAmount = amount.Round(2)
	o.recalculateAmounts()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// AdjustItemPrice overrides the unit price of the item at the given
// positional index, leaving its original price untouched
func (o *SalesOrder) AdjustItemPrice(itemIndex int, newPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return shared.NewDomainError("INVALID_ITEM_INDEX",
			fmt.Sprintf("Item index %d is out of range for order %s", itemIndex, o.OrderNumber))
	}
	if newPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := &o.Items[itemIndex]
	item.UnitPrice = newPrice.Round(4)
	item.Subtotal = item.Quantity.Mul(item.UnitPrice).Round(2)

	o.recalculateAmounts()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Confirm commits the order. The application layer re-checks stock for
// every item and moves inventory inside the same transaction scope.
func (o *SalesOrder) Confirm() error {
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

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// CanDelete returns true while the order is still pending
func (o *SalesOrder) CanDelete() bool {
	return o.Status == OrderStatusPending
}

// FindItem returns the order line for a product, if present
func (o *SalesOrder) FindItem(productID uuid.UUID) (*SalesOrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i], true
		}
	}
	return nil, false
}

// recalculateAmounts recomputes the subtotal from the current items and
// re-applies the existing discount and rounding, flooring the total at 0
func (o *SalesOrder) recalculateAmounts() {
	subtotal := decimal.Zero
	for i := range o.Items {
		subtotal = subtotal.Add(o.Items[i].Subtotal)
	}
	o.Subtotal = subtotal.Round(2)

	total := o.Subtotal.Sub(o.DiscountAmount).Sub(o.RoundingAmount).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.TotalAmount = total
}
