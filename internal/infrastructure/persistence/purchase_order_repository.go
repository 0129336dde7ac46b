package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplite/backend/internal/domain/shared"
	"github.com/shoplite/backend/internal/domain/trade"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID with its items loaded
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
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

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	query := applyOrderFilter(r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}), filter, "order_number", "supplier").
		Preload("Items")

	var orders []trade.PurchaseOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsByOrderNumber checks if a purchase order with the given number exists
func (r *GormPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase order together with its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// Delete deletes a purchase order
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.PurchaseOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}), filter, "order_number", "supplier")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyOrderFilter applies common order listing options: a status
// filter, a keyword search over the given columns, pagination and
// ordering (order_date descending by default).
func applyOrderFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	query = applyOrderFilterWithoutPagination(query, filter, searchColumns...)

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
		query = query.Order("order_date DESC, created_at DESC")
	}

	return query
}

func applyOrderFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		conditions := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, column := range searchColumns {
			conditions[i] = column + " ILIKE ?"
			args[i] = pattern
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "from":
			query = query.Where("order_date >= ?", value)
		case "to":
			query = query.Where("order_date <= ?", value)
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
