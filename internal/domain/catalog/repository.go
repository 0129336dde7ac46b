package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/shoplite/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
// FindByID and search results load the product's package units.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Search(ctx context.Context, keyword, location string) ([]Product, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StorageLocationRepository defines persistence operations for storage
// locations and their links to products
type StorageLocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StorageLocation, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StorageLocation, error)
	Save(ctx context.Context, location *StorageLocation) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignProduct(ctx context.Context, locationID, productID uuid.UUID) error
	UnassignProduct(ctx context.Context, locationID, productID uuid.UUID) error
}
