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

// SalesOrderService manages the sales order lifecycle. Stock is checked
// when lines are added and re-checked atomically at confirmation, which
// is when the outbound ledger entries are booked.
type SalesOrderService struct {
	scope          invapp.TransactionScope
	orderRepo      trade.SalesOrderRepository
	productRepo    catalog.ProductRepository
	inventoryRepo  inventory.InventoryRecordRepository
	ledger         *invapp.InventoryService
	eventPublisher shared.EventPublisher
}

func NewSalesOrderService(
	scope invapp.TransactionScope,
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	inventoryRepo inventory.InventoryRecordRepository,
	ledger *invapp.InventoryService,
) *SalesOrderService {
	return &SalesOrderService{
		scope:         scope,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		ledger:        ledger,
	}
}

// SetEventPublisher sets the event publisher
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create builds a pending sales order. Lines without an explicit price
// default to the product's retail price at the requested unit.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	number, err := generateOrderNumber(ctx, s.orderRepo.ExistsByOrderNumber, "SO", orderDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order, err := trade.NewSalesOrder(number, req.CustomerName, orderDate)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if err := s.addLine(ctx, order, item); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save sales order: %w", err)
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// AddItem adds a line to a pending order
func (s *SalesOrderService) AddItem(ctx context.Context, orderID uuid.UUID, item SalesItemRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales order: %w", err)
	}
	if err := s.addLine(ctx, order, item); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save sales order: %w", err)
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// addLine validates stock, resolves the price and appends the item
func (s *SalesOrderService) addLine(ctx context.Context, order *trade.SalesOrder, item SalesItemRequest) error {
	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("failed to find product %s: %w", item.ProductID, err)
	}

	baseQuantity, err := product.ToBaseUnits(item.Quantity, item.Unit)
	if err != nil {
		return err
	}
	record, err := s.inventoryRepo.FindByProductID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to find inventory record: %w", err)
	}
	if !record.CanCover(baseQuantity) {
		return inventory.NewInsufficientStockError(product.ID, baseQuantity, record.Quantity)
	}

	price := decimal.Zero
	if item.UnitPrice != nil {
		price = *item.UnitPrice
	} else {
		price, err = product.UnitPrice(item.Unit, catalog.PriceTypeRetail)
		if err != nil {
			return err
		}
	}

	return order.AddItem(product.ID, product.Name, item.Quantity, item.Unit, price)
}

// ApplyDiscount applies a percentage or fixed discount to a pending order
func (s *SalesOrderService) ApplyDiscount(ctx context.Context, orderID uuid.UUID, req ApplyDiscountRequest) (*SalesOrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.ApplyDiscount(req.Type, req.Value)
	})
}

// ApplyRounding knocks a small amount off the payable total of a
// pending order
func (s *SalesOrderService) ApplyRounding(ctx context.Context, orderID uuid.UUID, req ApplyRoundingRequest) (*SalesOrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.ApplyRounding(req.Amount)
	})
}

// AdjustItemPrice overrides one line's unit price on a pending order,
// keeping the original price for reference
func (s *SalesOrderService) AdjustItemPrice(ctx context.Context, orderID uuid.UUID, req AdjustItemPriceRequest) (*SalesOrderResponse, error) {
	return s.mutate(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.AdjustItemPrice(req.ItemIndex, req.NewPrice)
	})
}

func (s *SalesOrderService) mutate(ctx context.Context, orderID uuid.UUID, fn func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales order: %w", err)
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save sales order: %w", err)
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Confirm finalizes a pending order. All lines are re-checked against
// current stock before any ledger entry is written, so either every
// line ships or none does.
func (s *SalesOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		var err error
		order, err = repos.SalesOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to find sales order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to find product %s: %w", item.ProductID, err)
			}
			baseQuantity, err := product.ToBaseUnits(item.Quantity, item.Unit)
			if err != nil {
				return err
			}
			record, err := repos.InventoryRepo().FindByProductID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to find inventory record: %w", err)
			}
			if !record.CanCover(baseQuantity) {
				return inventory.NewInsufficientStockError(item.ProductID, baseQuantity, record.Quantity)
			}
		}

		if err := order.Confirm(); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			note := fmt.Sprintf("销售出库 %s", order.OrderNumber)
			_, err := s.ledger.AdjustWithin(ctx, repos, invapp.AdjustInventoryRequest{
				ProductID:       item.ProductID,
				QuantityChange:  item.Quantity.Neg(),
				TransactionType: inventory.TransactionTypeSale,
				Unit:            item.Unit,
				ReferenceID:     &order.ID,
				Note:            note,
			})
			if err != nil {
				return err
			}
		}

		if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
			return fmt.Errorf("failed to save sales order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// GetByID returns a sales order with its items
func (s *SalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales order: %w", err)
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// List returns sales orders matching the filter
func (s *SalesOrderService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[SalesOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, fmt.Errorf("failed to list sales orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, fmt.Errorf("failed to count sales orders: %w", err)
	}

	responses := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToSalesOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Delete removes a pending order
func (s *SalesOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to find sales order: %w", err)
	}
	if !order.CanDelete() {
		return trade.NewOrderAlreadyConfirmedError(order.OrderNumber)
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *SalesOrderService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
