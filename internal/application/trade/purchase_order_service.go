package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	invapp "github.com/shoplite/backend/internal/application/inventory"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/trade"
)

// PurchaseOrderService manages the purchase order lifecycle. Confirming
// an order books the inbound stock movements in the same transaction.
type PurchaseOrderService struct {
	scope          invapp.TransactionScope
	orderRepo      trade.PurchaseOrderRepository
	ledger         *invapp.InventoryService
	eventPublisher shared.EventPublisher
}

func NewPurchaseOrderService(
	scope invapp.TransactionScope,
	orderRepo trade.PurchaseOrderRepository,
	ledger *invapp.InventoryService,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:     scope,
		orderRepo: orderRepo,
		ledger:    ledger,
	}
}

// SetEventPublisher sets the event publisher
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create builds a pending purchase order from the request. Each line's
// unit must resolve against the product's base or package units.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	number, err := generateOrderNumber(ctx, s.orderRepo.ExistsByOrderNumber, "PO", orderDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order, err := trade.NewPurchaseOrder(number, req.Supplier, orderDate)
	if err != nil {
		return nil, err
	}

	var resp *PurchaseOrderResponse
	err = s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		for _, item := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to find product %s: %w", item.ProductID, err)
			}
			if _, err := product.ToBaseUnits(item.Quantity, item.Unit); err != nil {
				return err
			}
			if err := order.AddItem(product.ID, product.Name, item.Quantity, item.Unit, item.UnitPrice); err != nil {
				return err
			}
		}
		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return fmt.Errorf("failed to save purchase order: %w", err)
		}
		r := ToPurchaseOrderResponse(order)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Confirm finalizes a pending order and books one inbound ledger entry
// per line, atomically with the status change.
func (s *PurchaseOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to find purchase order: %w", err)
		}

		if err := order.Confirm(); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			note := fmt.Sprintf("采购入库 %s", order.OrderNumber)
			_, err := s.ledger.AdjustWithin(ctx, repos, invapp.AdjustInventoryRequest{
				ProductID:       item.ProductID,
				QuantityChange:  item.Quantity,
				TransactionType: inventory.TransactionTypePurchase,
				Unit:            item.Unit,
				ReferenceID:     &order.ID,
				Note:            note,
			})
			if err != nil {
				return err
			}
		}

		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return fmt.Errorf("failed to save purchase order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetByID returns a purchase order with its items
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// List returns purchase orders matching the filter
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[PurchaseOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Delete removes a pending order. Confirmed orders are immutable and
// can only be unwound through a return.
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to find purchase order: %w", err)
	}
	if !order.CanDelete() {
		return trade.NewOrderAlreadyConfirmedError(order.OrderNumber)
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
