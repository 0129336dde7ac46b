package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventProductCreated     = "catalog.product.created"
	EventProductUpdated     = "catalog.product.updated"
	EventProductPriceChange = "catalog.product.price_changed"
	EventPackageUnitAdded   = "catalog.package_unit.added"
	EventPackageUnitRemoved = "catalog.package_unit.removed"
)

// ProductCreatedEvent is raised when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Name     string `json:"name"`
	BaseUnit string `json:"base_unit"`
}

// NewProductCreatedEvent creates a product created event
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductCreated, "Product", p.ID),
		Code:            p.Code,
		Name:            p.Name,
		BaseUnit:        p.BaseUnit,
	}
}

// ProductUpdatedEvent is raised when a product's basic info changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a product updated event
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductUpdated, "Product", p.ID),
		Name:            p.Name,
	}
}

// ProductPriceChangedEvent is raised when either price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	OldPurchasePrice decimal.Decimal `json:"old_purchase_price"`
	OldRetailPrice   decimal.Decimal `json:"old_retail_price"`
	NewPurchasePrice decimal.Decimal `json:"new_purchase_price"`
	NewRetailPrice   decimal.Decimal `json:"new_retail_price"`
}

// NewProductPriceChangedEvent creates a price changed event
func NewProductPriceChangedEvent(p *Product, oldPurchase, oldRetail decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventProductPriceChange, "Product", p.ID),
		OldPurchasePrice: oldPurchase,
		OldRetailPrice:   oldRetail,
		NewPurchasePrice: p.PurchasePrice,
		NewRetailPrice:   p.RetailPrice,
	}
}

// PackageUnitAddedEvent is raised when an alternate unit is declared
type PackageUnitAddedEvent struct {
	shared.BaseDomainEvent
	UnitName       string          `json:"unit_name"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// NewPackageUnitAddedEvent creates a package unit added event
func NewPackageUnitAddedEvent(p *Product, unit *PackageUnit) *PackageUnitAddedEvent {
	return &PackageUnitAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPackageUnitAdded, "Product", p.ID),
		UnitName:        unit.Name,
		ConversionRate:  unit.ConversionRate,
	}
}

// PackageUnitRemovedEvent is raised when an alternate unit is removed
type PackageUnitRemovedEvent struct {
	shared.BaseDomainEvent
	UnitName string `json:"unit_name"`
}

// NewPackageUnitRemovedEvent creates a package unit removed event
func NewPackageUnitRemovedEvent(p *Product, unitName string) *PackageUnitRemovedEvent {
	return &PackageUnitRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPackageUnitRemoved, "Product", p.ID),
		UnitName:        unitName,
	}
}
