package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// ReturnOrderType discriminates which kind of order a return reverses
type ReturnOrderType string

const (
	ReturnOrderTypePurchase ReturnOrderType = "PURCHASE"
	ReturnOrderTypeSale     ReturnOrderType = "SALE"
)

// IsValid returns true if the return order type is a known value
func (t ReturnOrderType) IsValid() bool {
	return t == ReturnOrderTypePurchase || t == ReturnOrderTypeSale
}

// ReturnOrder reverses part of a confirmed purchase or sales order.
// Purchase and sale returns share one aggregate discriminated by
// OrderType since the lifecycle and quantity-cap logic are identical;
// only the ledger direction differs.
type ReturnOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	OriginalOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderType       ReturnOrderType `gorm:"type:varchar(20);not null;index"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ConfirmedAt     *time.Time
	Items           []ReturnOrderItem `gorm:"foreignKey:ReturnOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReturnOrder) TableName() string {
	return "return_orders"
}

// ReturnOrderItem mirrors the originating order's item shape
type ReturnOrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReturnOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (ReturnOrderItem) TableName() string {
	return "return_order_items"
}

// NewReturnOrder creates a pending return against a confirmed order
func NewReturnOrder(orderNumber string, originalOrderID uuid.UUID, orderType ReturnOrderType) (*ReturnOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RETURN_TYPE", fmt.Sprintf("Unknown return order type: %s", orderType))
	}

	return &ReturnOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		OriginalOrderID:   originalOrderID,
		OrderType:         orderType,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		Items:             make([]ReturnOrderItem, 0),
	}, nil
}

// AddItem appends a return line and recalculates the total. The cap
// against the original order's remaining returnable quantity is enforced
// by the application layer, which knows about prior confirmed returns.
func (o *ReturnOrder) AddItem(productID uuid.UUID, productName string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if err := validateOrderItem(quantity, unit, unitPrice); err != nil {
		return err
	}

	quantity = quantity.Round(3)
	unitPrice = unitPrice.Round(4)
	o.Items = append(o.Items, ReturnOrderItem{
		ID:            uuid.New(),
		ReturnOrderID: o.ID,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		Unit:          unit,
		UnitPrice:     unitPrice,
		Subtotal:      quantity.Mul(unitPrice).Round(2),
		CreatedAt:     time.Now(),
	})

	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Confirm commits the return. Ledger movement happens in the application
// layer inside the same transaction scope.
func (o *ReturnOrder) Confirm() error {
	if o.Status != OrderStatusPending {
		return NewOrderAlreadyConfirmedError(o.OrderNumber)
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm a return with no items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewReturnOrderConfirmedEvent(o))

	return nil
}

// CanDelete returns true while the return is still pending
func (o *ReturnOrder) CanDelete() bool {
	return o.Status == OrderStatusPending
}

// StockInbound returns true when confirming this return increases stock.
// A sale return brings goods back in; a purchase return ships them out.
func (o *ReturnOrder) StockInbound() bool {
	return o.OrderType == ReturnOrderTypeSale
}

func (o *ReturnOrder) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	o.TotalAmount = total.Round(2)
}

// NewReturnQuantityExceededError reports a return item exceeding the
// remaining returnable quantity of the original order line
func NewReturnQuantityExceededError(productID uuid.UUID, max, requested decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError("RETURN_QUANTITY_EXCEEDED",
		fmt.Sprintf("Return quantity %s for product %s exceeds the remaining returnable %s", requested, productID, max))
}
