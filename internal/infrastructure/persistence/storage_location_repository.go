package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplite/backend/internal/domain/catalog"
	"github.com/shoplite/backend/internal/domain/shared"
)

// GormStorageLocationRepository implements StorageLocationRepository
// using GORM
type GormStorageLocationRepository struct {
	db *gorm.DB
}

// NewGormStorageLocationRepository creates a new GormStorageLocationRepository
func NewGormStorageLocationRepository(db *gorm.DB) *GormStorageLocationRepository {
	return &GormStorageLocationRepository{db: db}
}

// FindByID finds a storage location by its ID
func (r *GormStorageLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StorageLocation, error) {
	var location catalog.StorageLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAll finds all storage locations matching the filter
func (r *GormStorageLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.StorageLocation, error) {
	query := r.db.WithContext(ctx).Model(&catalog.StorageLocation{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	var locations []catalog.StorageLocation
	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a storage location
func (r *GormStorageLocationRepository) Save(ctx context.Context, location *catalog.StorageLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete deletes a storage location and its product links
func (r *GormStorageLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.StorageLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return r.db.WithContext(ctx).
		Exec("DELETE FROM product_storage_locations WHERE storage_location_id = ?", id).Error
}

// AssignProduct links a product to a storage location. Assigning an
// already linked product is a no-op.
func (r *GormStorageLocationRepository) AssignProduct(ctx context.Context, locationID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO product_storage_locations (storage_location_id, product_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		locationID, productID,
	).Error
}

// UnassignProduct removes the link between a product and a storage location
func (r *GormStorageLocationRepository) UnassignProduct(ctx context.Context, locationID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM product_storage_locations WHERE storage_location_id = ? AND product_id = ?",
		locationID, productID,
	).Error
}

// Ensure GormStorageLocationRepository implements StorageLocationRepository
var _ catalog.StorageLocationRepository = (*GormStorageLocationRepository)(nil)
