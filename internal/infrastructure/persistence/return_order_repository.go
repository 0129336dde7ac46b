package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/trade"
)

// GormReturnOrderRepository implements ReturnOrderRepository using GORM
type GormReturnOrderRepository struct {
	db *gorm.DB
}

// NewGormReturnOrderRepository creates a new GormReturnOrderRepository
func NewGormReturnOrderRepository(db *gorm.DB) *GormReturnOrderRepository {
	return &GormReturnOrderRepository{db: db}
}

// FindByID finds a return order by its ID with its items loaded
func (r *GormReturnOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnOrder, error) {
	var order trade.ReturnOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all return orders matching the filter, newest first
func (r *GormReturnOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnOrder, error) {
	query := r.db.WithContext(ctx).Model(&trade.ReturnOrder{}).Preload("Items")

	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_type":
			query = query.Where("order_type = ?", value)
		case "original_order_id":
			query = query.Where("original_order_id = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []trade.ReturnOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindConfirmedByOriginalOrder finds all confirmed returns booked
// against an original order. The quantity cap sums over these.
func (r *GormReturnOrderRepository) FindConfirmedByOriginalOrder(ctx context.Context, originalOrderID uuid.UUID) ([]trade.ReturnOrder, error) {
	var orders []trade.ReturnOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("original_order_id = ? AND status = ?", originalOrderID, trade.OrderStatusConfirmed).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsByOrderNumber checks if a return order with the given number exists
func (r *GormReturnOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.ReturnOrder{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a return order together with its items
func (r *GormReturnOrderRepository) Save(ctx context.Context, order *trade.ReturnOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// Delete deletes a return order
func (r *GormReturnOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.ReturnOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReturnOrderRepository implements ReturnOrderRepository
var _ trade.ReturnOrderRepository = (*GormReturnOrderRepository)(nil)
