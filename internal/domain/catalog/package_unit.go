package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// PackageUnit represents an alternate unit for a product with a fixed
// conversion rate to the base unit (e.g. 1 箱 = 10 个). Price overrides
// are optional; when nil the price is computed from the base price.
type PackageUnit struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_package_unit_name,priority:1"`
	Name           string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_package_unit_name,priority:2"`
	ConversionRate decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PurchasePrice  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	RetailPrice    *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CreatedAt      time.Time        `gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PackageUnit) TableName() string {
	return "package_units"
}

// NewPackageUnit creates a new package unit
func NewPackageUnit(productID uuid.UUID, name string, conversionRate decimal.Decimal) (*PackageUnit, error) {
	if err := validateUnitName(name); err != nil {
		return nil, err
	}
	if err := validateConversionRate(conversionRate); err != nil {
		return nil, err
	}

	return &PackageUnit{
		ID:             uuid.New(),
		ProductID:      productID,
		Name:           name,
		ConversionRate: conversionRate.Round(4),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}, nil
}

// SetPriceOverrides sets unit-specific prices. A nil price means the
// computed base-price-times-rate value applies.
func (pu *PackageUnit) SetPriceOverrides(purchasePrice, retailPrice *decimal.Decimal) error {
	if purchasePrice != nil && purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if retailPrice != nil && retailPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}

	if purchasePrice != nil {
		rounded := purchasePrice.Round(4)
		pu.PurchasePrice = &rounded
	} else {
		pu.PurchasePrice = nil
	}
	if retailPrice != nil {
		rounded := retailPrice.Round(4)
		pu.RetailPrice = &rounded
	} else {
		pu.RetailPrice = nil
	}
	pu.UpdatedAt = time.Now()

	return nil
}

// UpdateConversionRate changes the conversion rate
func (pu *PackageUnit) UpdateConversionRate(rate decimal.Decimal) error {
	if err := validateConversionRate(rate); err != nil {
		return err
	}
	pu.ConversionRate = rate.Round(4)
	pu.UpdatedAt = time.Now()
	return nil
}

// PriceOverride returns the override for the given price type, or nil
func (pu *PackageUnit) PriceOverride(priceType PriceType) *decimal.Decimal {
	if priceType == PriceTypePurchase {
		return pu.PurchasePrice
	}
	return pu.RetailPrice
}

func validateConversionRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return shared.NewDomainError("INVALID_CONVERSION_RATE", "Conversion rate must be positive")
	}
	return nil
}
