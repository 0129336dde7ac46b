package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	invapp "github.com/shoplite/backend/internal/application/inventory"
	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/shared/valueobject"
	"github.com/shoplite/backend/internal/domain/trade"
)

const codeGenerationAttempts = 5

// ProductService handles catalog business operations. Creating a product
// also creates its zero-quantity inventory record in the same
// transaction, so every product always has exactly one stock row.
type ProductService struct {
	scope          invapp.TransactionScope
	productRepo    catalog.ProductRepository
	locationRepo   catalog.StorageLocationRepository
	usageChecker   trade.UsageChecker
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	scope invapp.TransactionScope,
	productRepo catalog.ProductRepository,
	locationRepo catalog.StorageLocationRepository,
	usageChecker trade.UsageChecker,
) *ProductService {
	return &ProductService{
		scope:        scope,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		usageChecker: usageChecker,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a product with a generated code and its inventory record
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	code, err := s.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProductWithPrices(code, req.Name, req.BaseUnit,
		valueobject.NewMoney(req.PurchasePrice), valueobject.NewMoney(req.RetailPrice))
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Specification, req.Supplier); err != nil {
		return nil, err
	}
	if req.MinStockThreshold != nil {
		if err := product.SetMinStockThreshold(*req.MinStockThreshold); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return repos.InventoryRepo().Save(ctx, inventory.NewInventoryRecord(product.ID))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	response := ToProductResponse(product)
	return &response, nil
}

// Update applies the provided fields to an existing product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	specification := product.Specification
	if req.Specification != nil {
		specification = *req.Specification
	}
	supplier := product.Supplier
	if req.Supplier != nil {
		supplier = *req.Supplier
	}
	if err := product.Update(name, specification, supplier); err != nil {
		return nil, err
	}

	if req.PurchasePrice != nil || req.RetailPrice != nil {
		purchase := product.PurchasePrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		retail := product.RetailPrice
		if req.RetailPrice != nil {
			retail = *req.RetailPrice
		}
		if err := product.SetPrices(valueobject.NewMoney(purchase), valueobject.NewMoney(retail)); err != nil {
			return nil, err
		}
	}
	if req.MinStockThreshold != nil {
		if err := product.SetMinStockThreshold(*req.MinStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	response := ToProductResponse(product)
	return &response, nil
}

// AddPackageUnit declares an alternate unit for a product
func (s *ProductService) AddPackageUnit(ctx context.Context, productID uuid.UUID, req AddPackageUnitRequest) (*PackageUnitResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	unit, err := product.AddPackageUnit(req.Name, req.ConversionRate, req.PurchasePrice, req.RetailPrice)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return &PackageUnitResponse{
		ID:             unit.ID,
		Name:           unit.Name,
		ConversionRate: unit.ConversionRate,
		PurchasePrice:  unit.PurchasePrice,
		RetailPrice:    unit.RetailPrice,
	}, nil
}

// RemovePackageUnit removes an alternate unit. Units referenced by any
// historical order or return line are protected from removal.
func (s *ProductService) RemovePackageUnit(ctx context.Context, productID uuid.UUID, unitName string) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if _, ok := product.FindUnit(unitName); !ok {
		return catalog.NewUnitNotFoundError(productID, unitName)
	}

	inUse, err := s.usageChecker.UnitInUse(ctx, productID, unitName)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("PACKAGE_UNIT_IN_USE",
			fmt.Sprintf("Unit %q is referenced by historical orders and cannot be removed", unitName))
	}

	if err := product.RemovePackageUnit(unitName); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}

	s.publishEvents(ctx, product)
	return nil
}

// GetUnitPrice resolves the price of one unit of a product
func (s *ProductService) GetUnitPrice(ctx context.Context, productID uuid.UUID, unit string, priceType catalog.PriceType) (decimal.Decimal, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return product.UnitPrice(unit, priceType)
}

// GetByID retrieves a product with its units
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Search lists products matching a literal keyword against name,
// specification or code, optionally restricted to a storage location
func (s *ProductService) Search(ctx context.Context, req SearchProductsRequest) ([]ProductResponse, error) {
	products, err := s.productRepo.Search(ctx, req.Keyword, req.Location)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// Delete removes a product. Products referenced by historical orders are
// protected; their records stay for audit.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	inUse, err := s.usageChecker.ProductInUse(ctx, productID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("PRODUCT_IN_USE", "Product is referenced by historical orders and cannot be deleted")
	}

	return s.productRepo.Delete(ctx, productID)
}

// CreateLocation creates a storage location
func (s *ProductService) CreateLocation(ctx context.Context, req CreateStorageLocationRequest) (*StorageLocationResponse, error) {
	location, err := catalog.NewStorageLocation(req.Name, req.Remark)
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	response := ToStorageLocationResponse(location)
	return &response, nil
}

// ListLocations lists storage locations
func (s *ProductService) ListLocations(ctx context.Context, filter shared.Filter) ([]StorageLocationResponse, error) {
	locations, err := s.locationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]StorageLocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToStorageLocationResponse(&locations[i]))
	}
	return responses, nil
}

// UpdateLocation renames a storage location
func (s *ProductService) UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateStorageLocationRequest) (*StorageLocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := location.Update(req.Name, req.Remark); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	response := ToStorageLocationResponse(location)
	return &response, nil
}

// DeleteLocation removes a storage location and its product links
func (s *ProductService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}

// AssignLocation links a product to a storage location
func (s *ProductService) AssignLocation(ctx context.Context, productID, locationID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return err
	}
	return s.locationRepo.AssignProduct(ctx, locationID, productID)
}

// UnassignLocation removes a product-location link
func (s *ProductService) UnassignLocation(ctx context.Context, productID, locationID uuid.UUID) error {
	return s.locationRepo.UnassignProduct(ctx, locationID, productID)
}

// generateCode draws random codes until one is free, falling back to an
// id-derived code after repeated collisions
func (s *ProductService) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		candidate := catalog.GenerateProductCode()
		exists, err := s.productRepo.ExistsByCode(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return catalog.FallbackProductCode(uuid.New()), nil
}

func (s *ProductService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
