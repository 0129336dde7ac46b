package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplite/backend/internal/domain/inventory"
	"github.com/shoplite/backend/internal/domain/shared"
)

// GormInventoryRecordRepository implements InventoryRecordRepository
// using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GormInventoryRecordRepository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindByProductID finds the inventory record for a product
func (r *GormInventoryRecordRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductIDs finds inventory records for multiple products
func (r *GormInventoryRecordRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.InventoryRecord, error) {
	if len(productIDs) == 0 {
		return []inventory.InventoryRecord{}, nil
	}

	var records []inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds all inventory records matching the filter
func (r *GormInventoryRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	query := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{})

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("updated_at DESC")

	var records []inventory.InventoryRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates an inventory record
func (r *GormInventoryRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SaveWithLock updates the record only if the stored version still
// matches expectedVersion. A stale version fails with
// ErrConcurrencyConflict and the caller's transaction rolls back.
func (r *GormInventoryRecordRepository) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, expectedVersion).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"version":    record.Version,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormInventoryRecordRepository implements InventoryRecordRepository
var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)

// GormInventoryTransactionRepository implements
// InventoryTransactionRepository using GORM. The table is append-only.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Save inserts a ledger entry
func (r *GormInventoryTransactionRepository) Save(ctx context.Context, transaction *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByQuery finds ledger entries matching the query, newest first,
// together with the total match count
func (r *GormInventoryTransactionRepository) FindByQuery(ctx context.Context, query inventory.TransactionQuery) ([]inventory.InventoryTransaction, int64, error) {
	base := r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{})

	if query.ProductID != nil {
		base = base.Where("product_id = ?", *query.ProductID)
	}
	if query.TransactionType != nil {
		base = base.Where("transaction_type = ?", *query.TransactionType)
	}
	if query.From != nil {
		base = base.Where("created_at >= ?", *query.From)
	}
	if query.To != nil {
		base = base.Where("created_at <= ?", *query.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.Page > 0 && query.PageSize > 0 {
		base = base.Offset((query.Page - 1) * query.PageSize).Limit(query.PageSize)
	}

	var transactions []inventory.InventoryTransaction
	if err := base.Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// FindByReference finds all ledger entries booked against a source
// document, oldest first
func (r *GormInventoryTransactionRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var transactions []inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Ensure GormInventoryTransactionRepository implements InventoryTransactionRepository
var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
