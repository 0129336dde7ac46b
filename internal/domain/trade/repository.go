package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines persistence for purchase orders.
// FindByID loads the order's items.
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SalesOrderRepository defines persistence for sales orders
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)
	FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]SalesOrder, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	Save(ctx context.Context, order *SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReturnOrderRepository defines persistence for return orders
type ReturnOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ReturnOrder, error)
	FindConfirmedByOriginalOrder(ctx context.Context, originalOrderID uuid.UUID) ([]ReturnOrder, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	Save(ctx context.Context, order *ReturnOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UsageChecker reports whether historical order, sales or return lines
// reference a product or one of its unit names. The catalog uses it to
// protect entities that appear on past documents from deletion.
type UsageChecker interface {
	UnitInUse(ctx context.Context, productID uuid.UUID, unit string) (bool, error)
	ProductInUse(ctx context.Context, productID uuid.UUID) (bool, error)
}
