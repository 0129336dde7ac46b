package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/trade"
)

// OrderItemRequest is one purchase order line
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest creates a pending purchase order
type CreatePurchaseOrderRequest struct {
	Supplier  string             `json:"supplier" binding:"required"`
	OrderDate *time.Time         `json:"order_date,omitempty" time_format:"2006-01-02"`
	Items     []OrderItemRequest `json:"items" binding:"required"`
}

// SalesItemRequest is one sales order line. A nil unit price means the
// price is auto-derived from the product's retail price at the unit.
type SalesItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	Unit      string           `json:"unit" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSalesOrderRequest creates a pending sales order
type CreateSalesOrderRequest struct {
	CustomerName string             `json:"customer_name,omitempty"`
	OrderDate    *time.Time         `json:"order_date,omitempty" time_format:"2006-01-02"`
	Items        []SalesItemRequest `json:"items" binding:"required"`
}

// ApplyDiscountRequest applies a percentage or fixed discount
type ApplyDiscountRequest struct {
	Type  trade.DiscountType `json:"type" binding:"required"`
	Value decimal.Decimal    `json:"value"`
}

// ApplyRoundingRequest knocks a small amount off the payable total
type ApplyRoundingRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AdjustItemPriceRequest overrides the price of one order line by index
type AdjustItemPriceRequest struct {
	ItemIndex int             `json:"item_index"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// ReturnItemRequest is one return line against the original order
type ReturnItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
}

// CreateReturnRequest creates a pending return against a confirmed order
type CreateReturnRequest struct {
	OriginalOrderID uuid.UUID           `json:"original_order_id" binding:"required"`
	Items           []ReturnItemRequest `json:"items" binding:"required"`
}

// OrderItemResponse is the API shape of an order line
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse is the API shape of a purchase order
type PurchaseOrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	OrderNumber string              `json:"order_number"`
	Supplier    string              `json:"supplier"`
	OrderDate   time.Time           `json:"order_date"`
	Status      trade.OrderStatus   `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	ConfirmedAt *time.Time          `json:"confirmed_at,omitempty"`
	Items       []OrderItemResponse `json:"items"`
}

// ToPurchaseOrderResponse maps a purchase order to its response shape
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return PurchaseOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Supplier:    o.Supplier,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		ConfirmedAt: o.ConfirmedAt,
		Items:       items,
	}
}

// SalesOrderItemResponse is the API shape of a sales order line
type SalesOrderItemResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse is the API shape of a sales order
type SalesOrderResponse struct {
	ID             uuid.UUID                `json:"id"`
	OrderNumber    string                   `json:"order_number"`
	CustomerName   string                   `json:"customer_name,omitempty"`
	OrderDate      time.Time                `json:"order_date"`
	Status         trade.OrderStatus        `json:"status"`
	Subtotal       decimal.Decimal          `json:"subtotal"`
	DiscountAmount decimal.Decimal          `json:"discount_amount"`
	RoundingAmount decimal.Decimal          `json:"rounding_amount"`
	TotalAmount    decimal.Decimal          `json:"total_amount"`
	ConfirmedAt    *time.Time               `json:"confirmed_at,omitempty"`
	Items          []SalesOrderItemResponse `json:"items"`
}

// ToSalesOrderResponse maps a sales order to its response shape
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, SalesOrderItemResponse{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			UnitPrice:     item.UnitPrice,
			OriginalPrice: item.OriginalPrice,
			Subtotal:      item.Subtotal,
		})
	}
	return SalesOrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.CustomerName,
		OrderDate:      o.OrderDate,
		Status:         o.Status,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		RoundingAmount: o.RoundingAmount,
		TotalAmount:    o.TotalAmount,
		ConfirmedAt:    o.ConfirmedAt,
		Items:          items,
	}
}

// ReturnOrderResponse is the API shape of a return order
type ReturnOrderResponse struct {
	ID              uuid.UUID             `json:"id"`
	OrderNumber     string                `json:"order_number"`
	OriginalOrderID uuid.UUID             `json:"original_order_id"`
	OrderType       trade.ReturnOrderType `json:"order_type"`
	Status          trade.OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	ConfirmedAt     *time.Time            `json:"confirmed_at,omitempty"`
	Items           []OrderItemResponse   `json:"items"`
}

// ToReturnOrderResponse maps a return order to its response shape
func ToReturnOrderResponse(o *trade.ReturnOrder) ReturnOrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return ReturnOrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		OriginalOrderID: o.OriginalOrderID,
		OrderType:       o.OrderType,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		ConfirmedAt:     o.ConfirmedAt,
		Items:           items,
	}
}
