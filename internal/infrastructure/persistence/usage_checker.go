package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplite/backend/internal/domain/trade"
)

// GormUsageChecker reports whether order, sales or return lines
// reference a product or one of its unit names. The catalog uses it to
// keep historical documents interpretable.
type GormUsageChecker struct {
	db *gorm.DB
}

// NewGormUsageChecker creates a new GormUsageChecker
func NewGormUsageChecker(db *gorm.DB) *GormUsageChecker {
	return &GormUsageChecker{db: db}
}

// UnitInUse checks whether any order line references the product with
// the given unit name
func (c *GormUsageChecker) UnitInUse(ctx context.Context, productID uuid.UUID, unit string) (bool, error) {
	for _, model := range []interface{}{
		&trade.PurchaseOrderItem{},
		&trade.SalesOrderItem{},
		&trade.ReturnOrderItem{},
	} {
		var count int64
		if err := c.db.WithContext(ctx).
			Model(model).
			Where("product_id = ? AND unit = ?", productID, unit).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// ProductInUse checks whether any order line references the product
func (c *GormUsageChecker) ProductInUse(ctx context.Context, productID uuid.UUID) (bool, error) {
	for _, model := range []interface{}{
		&trade.PurchaseOrderItem{},
		&trade.SalesOrderItem{},
		&trade.ReturnOrderItem{},
	} {
		var count int64
		if err := c.db.WithContext(ctx).
			Model(model).
			Where("product_id = ?", productID).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Ensure GormUsageChecker implements UsageChecker
var _ trade.UsageChecker = (*GormUsageChecker)(nil)
