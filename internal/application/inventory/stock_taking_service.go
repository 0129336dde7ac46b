package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
)

const takingNumberPrefix = "ST"

// StockTakingService drives physical inventory reconciliation: snapshot,
// count recording, and the completing reconciliation against the ledger.
type StockTakingService struct {
	scope           TransactionScope
	stockTakingRepo inventory.StockTakingRepository
	ledger          *InventoryService
	eventPublisher  shared.EventPublisher
}

// NewStockTakingService creates a new StockTakingService
func NewStockTakingService(
	scope TransactionScope,
	stockTakingRepo inventory.StockTakingRepository,
	ledger *InventoryService,
) *StockTakingService {
	return &StockTakingService{
		scope:           scope,
		stockTakingRepo: stockTakingRepo,
		ledger:          ledger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockTakingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create starts a stock-take, snapshotting the current quantity of every
// product in the catalog
func (s *StockTakingService) Create(ctx context.Context, req CreateStockTakingRequest) (*StockTakingResponse, error) {
	takingDate := time.Now()
	if req.TakingDate != nil {
		takingDate = *req.TakingDate
	}

	takingNumber, err := s.generateTakingNumber(ctx, takingDate)
	if err != nil {
		return nil, err
	}

	taking, err := inventory.NewStockTaking(takingNumber, takingDate)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := repos.ProductRepo().Search(ctx, "", "")
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(products))
		for i := range products {
			ids = append(ids, products[i].ID)
		}
		records, err := repos.InventoryRepo().FindByProductIDs(ctx, ids)
		if err != nil {
			return err
		}
		quantities := make(map[uuid.UUID]decimal.Decimal, len(records))
		for i := range records {
			quantities[records[i].ProductID] = records[i].Quantity
		}

		for i := range products {
			p := &products[i]
			if err := taking.AddItem(p.ID, p.Name, p.BaseUnit, quantities[p.ID]); err != nil {
				return err
			}
		}

		return repos.StockTakingRepo().Save(ctx, taking)
	})
	if err != nil {
		return nil, err
	}

	response := ToStockTakingResponse(taking)
	return &response, nil
}

// RecordActualQuantity records the counted quantity for one product
func (s *StockTakingService) RecordActualQuantity(ctx context.Context, takingID, productID uuid.UUID, actualQuantity decimal.Decimal) (*StockTakingResponse, error) {
	taking, err := s.stockTakingRepo.FindByID(ctx, takingID)
	if err != nil {
		return nil, err
	}

	if err := taking.RecordActualQuantity(productID, actualQuantity); err != nil {
		return nil, err
	}
	if err := s.stockTakingRepo.Save(ctx, taking); err != nil {
		return nil, err
	}

	response := ToStockTakingResponse(taking)
	return &response, nil
}

// Complete freezes the stock-take and reconciles the ledger: every item
// with a non-zero difference gets an adjustment entry for the difference
// and its quantity pinned to the counted value. Items counted exactly
// right are skipped. All of it commits or rolls back together.
func (s *StockTakingService) Complete(ctx context.Context, takingID uuid.UUID) (*StockTakingResponse, error) {
	var taking *inventory.StockTaking

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		taking, err = repos.StockTakingRepo().FindByID(ctx, takingID)
		if err != nil {
			return err
		}
		if taking.Status != inventory.StockTakingStatusInProgress {
			return inventory.NewStockTakingCompletedError(taking.ID)
		}

		for _, item := range taking.DifferingItems() {
			note := fmt.Sprintf("盘点调整 %s", taking.TakingNumber)
			if _, err := s.ledger.ReconcileWithin(ctx, repos, item.ProductID, item.Difference, item.ActualQuantity, taking.ID, note); err != nil {
				return err
			}
		}

		if err := taking.Complete(); err != nil {
			return err
		}
		return repos.StockTakingRepo().Save(ctx, taking)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, taking)
	response := ToStockTakingResponse(taking)
	return &response, nil
}

// GetByID retrieves a stock-take with its snapshot
func (s *StockTakingService) GetByID(ctx context.Context, takingID uuid.UUID) (*StockTakingResponse, error) {
	taking, err := s.stockTakingRepo.FindByID(ctx, takingID)
	if err != nil {
		return nil, err
	}
	response := ToStockTakingResponse(taking)
	return &response, nil
}

// List pages through stock-takes
func (s *StockTakingService) List(ctx context.Context, filter shared.Filter) ([]StockTakingResponse, error) {
	takings, err := s.stockTakingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]StockTakingResponse, 0, len(takings))
	for i := range takings {
		responses = append(responses, ToStockTakingResponse(&takings[i]))
	}
	return responses, nil
}

// GetDifferenceSummary aggregates a stock-take's differences
func (s *StockTakingService) GetDifferenceSummary(ctx context.Context, takingID uuid.UUID) (*inventory.DifferenceSummary, error) {
	taking, err := s.stockTakingRepo.FindByID(ctx, takingID)
	if err != nil {
		return nil, err
	}
	summary := taking.Summarize()
	return &summary, nil
}

func (s *StockTakingService) generateTakingNumber(ctx context.Context, date time.Time) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		candidate := shared.NewDocumentNumber(takingNumberPrefix, date)
		exists, err := s.stockTakingRepo.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	// random suffix kept colliding, derive one from a fresh id
	id := uuid.New()
	return fmt.Sprintf("%s%s%s", takingNumberPrefix, date.Format("20060102"), id.String()[:8]), nil
}

func (s *StockTakingService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
