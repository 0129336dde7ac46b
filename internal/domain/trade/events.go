package trade

import (
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// Event types for the trade context
const (
	EventPurchaseOrderConfirmed = "trade.purchase_order.confirmed"
	EventSalesOrderConfirmed    = "trade.sales_order.confirmed"
	EventReturnOrderConfirmed   = "trade.return_order.confirmed"
)

// PurchaseOrderConfirmedEvent is raised when a purchase order commits
type PurchaseOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	Supplier    string          `json:"supplier"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewPurchaseOrderConfirmedEvent creates a purchase order confirmed event
func NewPurchaseOrderConfirmedEvent(o *PurchaseOrder) *PurchaseOrderConfirmedEvent {
	return &PurchaseOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderConfirmed, "PurchaseOrder", o.ID),
		OrderNumber:     o.OrderNumber,
		Supplier:        o.Supplier,
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
}

// SalesOrderConfirmedEvent is raised when a sales order commits
type SalesOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewSalesOrderConfirmedEvent creates a sales order confirmed event
func NewSalesOrderConfirmedEvent(o *SalesOrder) *SalesOrderConfirmedEvent {
	return &SalesOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSalesOrderConfirmed, "SalesOrder", o.ID),
		OrderNumber:     o.OrderNumber,
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
}

// ReturnOrderConfirmedEvent is raised when a return order commits
type ReturnOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	OrderType   ReturnOrderType `json:"order_type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewReturnOrderConfirmedEvent creates a return order confirmed event
func NewReturnOrderConfirmedEvent(o *ReturnOrder) *ReturnOrderConfirmedEvent {
	return &ReturnOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReturnOrderConfirmed, "ReturnOrder", o.ID),
		OrderNumber:     o.OrderNumber,
		OrderType:       o.OrderType,
		TotalAmount:     o.TotalAmount,
	}
}
