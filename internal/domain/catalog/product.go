package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/shared/valueobject"
)

// PriceType selects which of a product's two prices an operation refers to
type PriceType string

const (
	PriceTypePurchase PriceType = "purchase"
	PriceTypeRetail   PriceType = "retail"
)

// IsValid returns true if the price type is a known value
func (t PriceType) IsValid() bool {
	return t == PriceTypePurchase || t == PriceTypeRetail
}

// Product represents a product/SKU in the catalog.
// It is the aggregate root for product and package-unit operations.
// Prices are per base unit with 4 decimal places; quantities carry 3.
type Product struct {
	shared.BaseAggregateRoot
	Code              string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name              string            `gorm:"type:varchar(200);not null"`
	Specification     string            `gorm:"type:varchar(200)"`
	BaseUnit          string            `gorm:"type:varchar(20);not null"`
	PurchasePrice     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	RetailPrice       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Supplier          string            `gorm:"type:varchar(200)"`
	MinStockThreshold decimal.Decimal   `gorm:"type:decimal(18,3);not null;default:0"`
	Units             []PackageUnit     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Locations         []StorageLocation `gorm:"many2many:product_storage_locations;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with the given code
func NewProduct(code, name, baseUnit string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnitName(baseUnit); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		BaseUnit:          strings.TrimSpace(baseUnit),
		PurchasePrice:     decimal.Zero,
		RetailPrice:       decimal.Zero,
		MinStockThreshold: decimal.Zero,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewProductWithPrices creates a new product with prices
func NewProductWithPrices(code, name, baseUnit string, purchasePrice, retailPrice valueobject.Money) (*Product, error) {
	product, err := NewProduct(code, name, baseUnit)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(purchasePrice, retailPrice); err != nil {
		return nil, err
	}

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, specification, supplier string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Specification = strings.TrimSpace(specification)
	p.Supplier = strings.TrimSpace(supplier)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets both purchase and retail prices
func (p *Product) SetPrices(purchasePrice, retailPrice valueobject.Money) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if retailPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}

	oldPurchase := p.PurchasePrice
	oldRetail := p.RetailPrice

	p.PurchasePrice = purchasePrice.Amount().Round(4)
	p.RetailPrice = retailPrice.Amount().Round(4)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPurchase, oldRetail))

	return nil
}

// SetMinStockThreshold sets the low-stock alert threshold in base units
func (p *Product) SetMinStockThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock threshold cannot be negative")
	}

	p.MinStockThreshold = threshold.Round(3)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// FindUnit returns the package unit with the given name, if declared
func (p *Product) FindUnit(name string) (*PackageUnit, bool) {
	for i := range p.Units {
		if p.Units[i].Name == name {
			return &p.Units[i], true
		}
	}
	return nil, false
}

// AddPackageUnit declares an alternate unit for this product.
// The unit name must be unique per product and distinct from the base unit.
func (p *Product) AddPackageUnit(name string, conversionRate decimal.Decimal, purchasePrice, retailPrice *decimal.Decimal) (*PackageUnit, error) {
	name = strings.TrimSpace(name)
	if err := validateUnitName(name); err != nil {
		return nil, err
	}
	if name == p.BaseUnit {
		return nil, NewPackageUnitExistsError(p.ID, name)
	}
	if _, ok := p.FindUnit(name); ok {
		return nil, NewPackageUnitExistsError(p.ID, name)
	}

	unit, err := NewPackageUnit(p.ID, name, conversionRate)
	if err != nil {
		return nil, err
	}
	if err := unit.SetPriceOverrides(purchasePrice, retailPrice); err != nil {
		return nil, err
	}

	p.Units = append(p.Units, *unit)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPackageUnitAddedEvent(p, unit))

	return unit, nil
}

// RemovePackageUnit removes the named unit from this product.
// Usage against historical orders is checked by the application layer
// before this is invoked.
func (p *Product) RemovePackageUnit(name string) error {
	for i := range p.Units {
		if p.Units[i].Name == name {
			p.Units = append(p.Units[:i], p.Units[i+1:]...)
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			p.AddDomainEvent(NewPackageUnitRemovedEvent(p, name))
			return nil
		}
	}
	return NewUnitNotFoundError(p.ID, name)
}

// ToBaseUnits converts a quantity given in the named unit to base units.
// The base unit passes through; package units multiply by their conversion
// rate. Results are rounded to 3 decimal places.
func (p *Product) ToBaseUnits(quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	if unit == p.BaseUnit {
		return quantity.Round(3), nil
	}
	pu, ok := p.FindUnit(unit)
	if !ok {
		return decimal.Zero, NewUnitNotFoundError(p.ID, unit)
	}
	return quantity.Mul(pu.ConversionRate).Round(3), nil
}

// FromBaseUnits converts a base-unit quantity to the named unit
func (p *Product) FromBaseUnits(baseQuantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	if unit == p.BaseUnit {
		return baseQuantity.Round(3), nil
	}
	pu, ok := p.FindUnit(unit)
	if !ok {
		return decimal.Zero, NewUnitNotFoundError(p.ID, unit)
	}
	return baseQuantity.Div(pu.ConversionRate).Round(3), nil
}

// UnitPrice returns the price of one named unit. The base unit returns the
// product's own price; a package unit returns its override when set, else
// the base price multiplied by the conversion rate, rounded to 4 decimals.
func (p *Product) UnitPrice(unit string, priceType PriceType) (decimal.Decimal, error) {
	if !priceType.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_PRICE_TYPE", fmt.Sprintf("Unknown price type: %s", priceType))
	}

	basePrice := p.RetailPrice
	if priceType == PriceTypePurchase {
		basePrice = p.PurchasePrice
	}

	if unit == p.BaseUnit {
		return basePrice, nil
	}

	pu, ok := p.FindUnit(unit)
	if !ok {
		return decimal.Zero, NewUnitNotFoundError(p.ID, unit)
	}
	if override := pu.PriceOverride(priceType); override != nil {
		return *override, nil
	}
	return basePrice.Mul(pu.ConversionRate).Round(4), nil
}

// GetProfitMargin returns the profit margin percentage per base unit.
// Returns 0 if the purchase price is zero.
func (p *Product) GetProfitMargin() decimal.Decimal {
	if p.PurchasePrice.IsZero() {
		return decimal.Zero
	}
	profit := p.RetailPrice.Sub(p.PurchasePrice)
	return profit.Div(p.PurchasePrice).Mul(decimal.NewFromInt(100))
}

// NewUnitNotFoundError reports a unit name not declared for a product
func NewUnitNotFoundError(productID uuid.UUID, unit string) *shared.DomainError {
	return shared.NewDomainError("UNIT_NOT_FOUND", fmt.Sprintf("Unit %q is not declared for product %s", unit, productID))
}

// NewPackageUnitExistsError reports a duplicate package unit name
func NewPackageUnitExistsError(productID uuid.UUID, unit string) *shared.DomainError {
	return shared.NewDomainError("PACKAGE_UNIT_EXISTS", fmt.Sprintf("Unit %q already exists for product %s", unit, productID))
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 20 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 20 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot be empty")
	}
	if len(name) > 20 {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot exceed 20 characters")
	}
	return nil
}
