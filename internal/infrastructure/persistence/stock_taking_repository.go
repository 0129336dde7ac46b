package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
)

// GormStockTakingRepository implements StockTakingRepository using GORM
type GormStockTakingRepository struct {
	db *gorm.DB
}

// NewGormStockTakingRepository creates a new GormStockTakingRepository
func NewGormStockTakingRepository(db *gorm.DB) *GormStockTakingRepository {
	return &GormStockTakingRepository{db: db}
}

// FindByID finds a stock-take by its ID with its item snapshot loaded
func (r *GormStockTakingRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTaking, error) {
	var taking inventory.StockTaking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&taking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &taking, nil
}

// FindAll finds all stock-takes matching the filter, newest first
func (r *GormStockTakingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTaking, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockTaking{}).Preload("Items")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
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
		query = query.Order("taking_date DESC, created_at DESC")
	}

	var takings []inventory.StockTaking
	if err := query.Find(&takings).Error; err != nil {
		return nil, err
	}
	return takings, nil
}

// ExistsByNumber checks if a stock-take with the given number exists
func (r *GormStockTakingRepository) ExistsByNumber(ctx context.Context, takingNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTaking{}).
		Where("taking_number = ?", takingNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a stock-take together with its items
func (r *GormStockTakingRepository) Save(ctx context.Context, taking *inventory.StockTaking) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(taking).Error
}

// Ensure GormStockTakingRepository implements StockTakingRepository
var _ inventory.StockTakingRepository = (*GormStockTakingRepository)(nil)
