package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/catalog"
)

// CreateProductRequest creates a product together with its zero-quantity
// inventory record. Prices are per base unit.
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required"`
	BaseUnit          string           `json:"base_unit" binding:"required"`
	PurchasePrice     decimal.Decimal  `json:"purchase_price"`
	RetailPrice       decimal.Decimal  `json:"retail_price"`
	Specification     string           `json:"specification,omitempty"`
	Supplier          string           `json:"supplier,omitempty"`
	MinStockThreshold *decimal.Decimal `json:"min_stock_threshold,omitempty"`
}

// UpdateProductRequest updates only the provided fields
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	Specification     *string          `json:"specification,omitempty"`
	Supplier          *string          `json:"supplier,omitempty"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price,omitempty"`
	RetailPrice       *decimal.Decimal `json:"retail_price,omitempty"`
	MinStockThreshold *decimal.Decimal `json:"min_stock_threshold,omitempty"`
}

// AddPackageUnitRequest declares an alternate unit for a product
type AddPackageUnitRequest struct {
	Name           string           `json:"name" binding:"required"`
	ConversionRate decimal.Decimal  `json:"conversion_rate" binding:"required"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price,omitempty"`
	RetailPrice    *decimal.Decimal `json:"retail_price,omitempty"`
}

// PackageUnitResponse is the API shape of a package unit
type PackageUnitResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	ConversionRate decimal.Decimal  `json:"conversion_rate"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price,omitempty"`
	RetailPrice    *decimal.Decimal `json:"retail_price,omitempty"`
}

// ProductResponse is the API shape of a product
type ProductResponse struct {
	ID                uuid.UUID             `json:"id"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	Specification     string                `json:"specification,omitempty"`
	BaseUnit          string                `json:"base_unit"`
	PurchasePrice     decimal.Decimal       `json:"purchase_price"`
	RetailPrice       decimal.Decimal       `json:"retail_price"`
	Supplier          string                `json:"supplier,omitempty"`
	MinStockThreshold decimal.Decimal       `json:"min_stock_threshold"`
	Units             []PackageUnitResponse `json:"units"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// ToProductResponse maps a product to its response shape
func ToProductResponse(p *catalog.Product) ProductResponse {
	units := make([]PackageUnitResponse, 0, len(p.Units))
	for i := range p.Units {
		u := &p.Units[i]
		units = append(units, PackageUnitResponse{
			ID:             u.ID,
			Name:           u.Name,
			ConversionRate: u.ConversionRate,
			PurchasePrice:  u.PurchasePrice,
			RetailPrice:    u.RetailPrice,
		})
	}
	return ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Specification:     p.Specification,
		BaseUnit:          p.BaseUnit,
		PurchasePrice:     p.PurchasePrice,
		RetailPrice:       p.RetailPrice,
		Supplier:          p.Supplier,
		MinStockThreshold: p.MinStockThreshold,
		Units:             units,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// SearchProductsRequest filters the catalog listing
type SearchProductsRequest struct {
	Keyword  string `form:"keyword"`
	Location string `form:"location"`
}

// CreateStorageLocationRequest creates a named storage location
type CreateStorageLocationRequest struct {
	Name   string `json:"name" binding:"required"`
	Remark string `json:"remark,omitempty"`
}

// UpdateStorageLocationRequest renames a storage location
type UpdateStorageLocationRequest struct {
	Name   string `json:"name" binding:"required"`
	Remark string `json:"remark,omitempty"`
}

// StorageLocationResponse is the API shape of a storage location
type StorageLocationResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Remark string    `json:"remark,omitempty"`
}

// ToStorageLocationResponse maps a location to its response shape
func ToStorageLocationResponse(l *catalog.StorageLocation) StorageLocationResponse {
	return StorageLocationResponse{
		ID:     l.ID,
		Name:   l.Name,
		Remark: l.Remark,
	}
}
