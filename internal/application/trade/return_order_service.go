package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invapp "github.com/shoplite/backend/internal/application/inventory"
	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/trade"
)

// originalLine is a line of the order a return is raised against
type originalLine struct {
	productName string
	quantity    decimal.Decimal
	unit        string
	unitPrice   decimal.Decimal
}

// ReturnOrderService manages returns against confirmed purchase and
// sales orders. Return quantities are capped so the total returned per
// product never exceeds what the original order carried.
type ReturnOrderService struct {
	scope             invapp.TransactionScope
	returnRepo        trade.ReturnOrderRepository
	purchaseOrderRepo trade.PurchaseOrderRepository
	salesOrderRepo    trade.SalesOrderRepository
	productRepo       catalog.ProductRepository
	ledger            *invapp.InventoryService
	eventPublisher    shared.EventPublisher
}

func NewReturnOrderService(
	scope invapp.TransactionScope,
	returnRepo trade.ReturnOrderRepository,
	purchaseOrderRepo trade.PurchaseOrderRepository,
	salesOrderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	ledger *invapp.InventoryService,
) *ReturnOrderService {
	return &ReturnOrderService{
		scope:             scope,
		returnRepo:        returnRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
		productRepo:       productRepo,
		ledger:            ledger,
	}
}

// SetEventPublisher sets the event publisher
func (s *ReturnOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreatePurchaseReturn creates a pending return against a confirmed
// purchase order. Confirming it later ships stock back out.
func (s *ReturnOrderService) CreatePurchaseReturn(ctx context.Context, req CreateReturnRequest) (*ReturnOrderResponse, error) {
	original, err := s.purchaseOrderRepo.FindByID(ctx, req.OriginalOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	if original.Status != trade.OrderStatusConfirmed {
		return nil, shared.NewDomainError("ORDER_NOT_CONFIRMED",
			fmt.Sprintf("Order %s must be confirmed before it can be returned against", original.OrderNumber))
	}

	lookup := func(productID uuid.UUID) (originalLine, bool) {
		item, ok := original.FindItem(productID)
		if !ok {
			return originalLine{}, false
		}
		return originalLine{item.ProductName, item.Quantity, item.Unit, item.UnitPrice}, true
	}
	return s.createReturn(ctx, trade.ReturnOrderTypePurchase, original.ID, lookup, req.Items)
}

// CreateSalesReturn creates a pending return against a confirmed sales
// order. Confirming it later brings stock back in.
func (s *ReturnOrderService) CreateSalesReturn(ctx context.Context, req CreateReturnRequest) (*ReturnOrderResponse, error) {
	original, err := s.salesOrderRepo.FindByID(ctx, req.OriginalOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales order: %w", err)
	}
	if original.Status != trade.OrderStatusConfirmed {
		return nil, shared.NewDomainError("ORDER_NOT_CONFIRMED",
			fmt.Sprintf("Order %s must be confirmed before it can be returned against", original.OrderNumber))
	}

	lookup := func(productID uuid.UUID) (originalLine, bool) {
		item, ok := original.FindItem(productID)
		if !ok {
			return originalLine{}, false
		}
		return originalLine{item.ProductName, item.Quantity, item.Unit, item.UnitPrice}, true
	}
	return s.createReturn(ctx, trade.ReturnOrderTypeSale, original.ID, lookup, req.Items)
}

func (s *ReturnOrderService) createReturn(ctx context.Context, orderType trade.ReturnOrderType, originalOrderID uuid.UUID, lookup func(uuid.UUID) (originalLine, bool), items []ReturnItemRequest) (*ReturnOrderResponse, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Return must contain at least one item")
	}

	priorReturns, err := s.returnRepo.FindConfirmedByOriginalOrder(ctx, originalOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find prior returns: %w", err)
	}

	number, err := generateOrderNumber(ctx, s.returnRepo.ExistsByOrderNumber, "RO", time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}
	order, err := trade.NewReturnOrder(number, originalOrderID, orderType)
	if err != nil {
		return nil, err
	}

	// lines in this request count against the cap too, so a product
	// split across several lines cannot exceed it in aggregate
	requestedTotals := make(map[uuid.UUID]decimal.Decimal)

	for _, item := range items {
		line, ok := lookup(item.ProductID)
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_IN_ORDER",
				fmt.Sprintf("Product %s is not on the original order", item.ProductID))
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to find product %s: %w", item.ProductID, err)
		}

		requestedBase, err := product.ToBaseUnits(item.Quantity, item.Unit)
		if err != nil {
			return nil, err
		}
		originalBase, err := product.ToBaseUnits(line.quantity, line.unit)
		if err != nil {
			return nil, err
		}
		returnedBase, err := s.returnedBaseQuantity(product, priorReturns, item.ProductID)
		if err != nil {
			return nil, err
		}

		remaining := originalBase.Sub(returnedBase).Sub(requestedTotals[item.ProductID])
		if requestedBase.GreaterThan(remaining) {
			return nil, trade.NewReturnQuantityExceededError(item.ProductID, remaining, requestedBase)
		}
		requestedTotals[item.ProductID] = requestedTotals[item.ProductID].Add(requestedBase)

		price, err := returnUnitPrice(product, line, item.Unit)
		if err != nil {
			return nil, err
		}
		if err := order.AddItem(product.ID, line.productName, item.Quantity, item.Unit, price); err != nil {
			return nil, err
		}
	}

	if err := s.returnRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save return order: %w", err)
	}
	resp := ToReturnOrderResponse(order)
	return &resp, nil
}

// returnedBaseQuantity sums prior confirmed return lines for a product,
// in base units
func (s *ReturnOrderService) returnedBaseQuantity(product *catalog.Product, priorReturns []trade.ReturnOrder, productID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range priorReturns {
		for j := range priorReturns[i].Items {
			item := &priorReturns[i].Items[j]
			if item.ProductID != productID {
				continue
			}
			base, err := product.ToBaseUnits(item.Quantity, item.Unit)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(base)
		}
	}
	return total, nil
}

// returnUnitPrice reprices the original line's unit price into the
// requested unit, so the refund matches what was originally paid
func returnUnitPrice(product *catalog.Product, line originalLine, unit string) (decimal.Decimal, error) {
	if unit == line.unit {
		return line.unitPrice, nil
	}
	one := decimal.NewFromInt(1)
	originalRate, err := product.ToBaseUnits(one, line.unit)
	if err != nil {
		return decimal.Zero, err
	}
	requestedRate, err := product.ToBaseUnits(one, unit)
	if err != nil {
		return decimal.Zero, err
	}
	if originalRate.IsZero() {
		return decimal.Zero, catalog.NewUnitNotFoundError(product.ID, line.unit)
	}
	return line.unitPrice.Div(originalRate).Mul(requestedRate).Round(4), nil
}

// Confirm finalizes a pending return and books the stock movement per
// line: purchase returns ship stock out, sales returns bring it back in.
func (s *ReturnOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*ReturnOrderResponse, error) {
	var order *trade.ReturnOrder
	err := s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		var err error
		order, err = repos.ReturnOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to find return order: %w", err)
		}

		if err := order.Confirm(); err != nil {
			return err
		}

		note := fmt.Sprintf("采购退货 %s", order.OrderNumber)
		if order.StockInbound() {
			note = fmt.Sprintf("销售退货 %s", order.OrderNumber)
		}
		for i := range order.Items {
			item := &order.Items[i]
			change := item.Quantity
			if !order.StockInbound() {
				change = change.Neg()
			}
			_, err := s.ledger.AdjustWithin(ctx, repos, invapp.AdjustInventoryRequest{
				ProductID:       item.ProductID,
				QuantityChange:  change,
				TransactionType: inventory.TransactionTypeReturn,
				Unit:            item.Unit,
				ReferenceID:     &order.ID,
				Note:            note,
			})
			if err != nil {
				return err
			}
		}

		if err := repos.ReturnOrderRepo().Save(ctx, order); err != nil {
			return fmt.Errorf("failed to save return order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	resp := ToReturnOrderResponse(order)
	return &resp, nil
}

// GetByID returns a return order with its items
func (s *ReturnOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*ReturnOrderResponse, error) {
	order, err := s.returnRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find return order: %w", err)
	}
	resp := ToReturnOrderResponse(order)
	return &resp, nil
}

// List returns return orders matching the filter
func (s *ReturnOrderService) List(ctx context.Context, filter shared.Filter) ([]ReturnOrderResponse, error) {
	orders, err := s.returnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list return orders: %w", err)
	}
	responses := make([]ReturnOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToReturnOrderResponse(&orders[i]))
	}
	return responses, nil
}

// Delete removes a pending return
func (s *ReturnOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.returnRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to find return order: %w", err)
	}
	if !order.CanDelete() {
		return trade.NewOrderAlreadyConfirmedError(order.OrderNumber)
	}
	return s.returnRepo.Delete(ctx, orderID)
}

func (s *ReturnOrderService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
