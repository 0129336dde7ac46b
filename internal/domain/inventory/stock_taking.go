package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/shared"
)

// StockTakingStatus represents the lifecycle state of a stock-take
type StockTakingStatus string

const (
	StockTakingStatusInProgress StockTakingStatus = "IN_PROGRESS"
	StockTakingStatusCompleted  StockTakingStatus = "COMPLETED"
)

// IsValid returns true if the status is a known value
func (s StockTakingStatus) IsValid() bool {
	return s == StockTakingStatusInProgress || s == StockTakingStatusCompleted
}

// StockTaking is a physical inventory reconciliation. On creation it
// snapshots every product's system quantity; counts are recorded while
// IN_PROGRESS and the whole snapshot freezes once COMPLETED.
type StockTaking struct {
	shared.BaseAggregateRoot
	TakingNumber string            `gorm:"type:varchar(30);not null;uniqueIndex"`
	TakingDate   time.Time         `gorm:"not null"`
	Status       StockTakingStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	CompletedAt  *time.Time
	Items        []StockTakingItem `gorm:"foreignKey:StockTakingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StockTaking) TableName() string {
	return "stock_takings"
}

// StockTakingItem is the per-product snapshot line. Quantities are in
// the product's base unit with 3 decimal places; difference is always
// actual minus system.
type StockTakingItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StockTakingID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_stock_taking_product,priority:1"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_taking_product,priority:2"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	SystemQuantity decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	ActualQuantity decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Difference     decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (StockTakingItem) TableName() string {
	return "stock_taking_items"
}

// HasDifference returns true if actual and system quantities differ
func (i *StockTakingItem) HasDifference() bool {
	return !i.Difference.IsZero()
}

// NewStockTaking starts a stock-take. Product snapshots are appended
// with AddItem before the aggregate is first persisted.
func NewStockTaking(takingNumber string, takingDate time.Time) (*StockTaking, error) {
	if takingNumber == "" {
		return nil, shared.NewDomainError("INVALID_TAKING_NUMBER", "Stock taking number cannot be empty")
	}

	return &StockTaking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TakingNumber:      takingNumber,
		TakingDate:        takingDate,
		Status:            StockTakingStatusInProgress,
		Items:             make([]StockTakingItem, 0),
	}, nil
}

// AddItem snapshots one product. The actual quantity is pre-seeded equal
// to the system quantity so untouched items complete with no difference.
func (st *StockTaking) AddItem(productID uuid.UUID, productName, unit string, systemQuantity decimal.Decimal) error {
	if st.Status != StockTakingStatusInProgress {
		return NewStockTakingCompletedError(st.ID)
	}
	for i := range st.Items {
		if st.Items[i].ProductID == productID {
			return shared.NewDomainError("DUPLICATE_ITEM", fmt.Sprintf("Product %s is already in the snapshot", productID))
		}
	}

	system := systemQuantity.Round(3)
	st.Items = append(st.Items, StockTakingItem{
		ID:             uuid.New(),
		StockTakingID:  st.ID,
		ProductID:      productID,
		ProductName:    productName,
		Unit:           unit,
		SystemQuantity: system,
		ActualQuantity: system,
		Difference:     decimal.Zero,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})

	return nil
}

// RecordActualQuantity records the counted quantity for one product and
// recomputes the difference
func (st *StockTaking) RecordActualQuantity(productID uuid.UUID, actualQuantity decimal.Decimal) error {
	if st.Status != StockTakingStatusInProgress {
		return NewStockTakingCompletedError(st.ID)
	}
	if actualQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}

	for i := range st.Items {
		if st.Items[i].ProductID == productID {
			item := &st.Items[i]
			item.ActualQuantity = actualQuantity.Round(3)
			item.Difference = item.ActualQuantity.Sub(item.SystemQuantity).Round(3)
			item.UpdatedAt = time.Now()
			st.UpdatedAt = time.Now()
			st.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("STOCK_TAKING_ITEM_NOT_FOUND",
		fmt.Sprintf("Product %s is not part of stock taking %s", productID, st.TakingNumber))
}

// DifferingItems returns the items whose counted quantity deviates from
// the system quantity
func (st *StockTaking) DifferingItems() []StockTakingItem {
	var items []StockTakingItem
	for i := range st.Items {
		if st.Items[i].HasDifference() {
			items = append(items, st.Items[i])
		}
	}
	return items
}

// Complete freezes the stock-take. The caller reconciles the ledger for
// every differing item before marking it complete; the transition is
// irreversible.
func (st *StockTaking) Complete() error {
	if st.Status != StockTakingStatusInProgress {
		return NewStockTakingCompletedError(st.ID)
	}

	now := time.Now()
	st.Status = StockTakingStatusCompleted
	st.CompletedAt = &now
	st.UpdatedAt = now
	st.IncrementVersion()

	st.AddDomainEvent(NewStockTakingCompletedEvent(st))

	return nil
}

// DifferenceSummary aggregates the differences of a stock-take
type DifferenceSummary struct {
	DifferingItemCount int             `json:"differing_item_count"`
	TotalSurplus       decimal.Decimal `json:"total_surplus"`
	TotalShortage      decimal.Decimal `json:"total_shortage"`
}

// Summarize counts differing items and sums surpluses and shortages
// separately. The shortage total is reported as a positive magnitude.
func (st *StockTaking) Summarize() DifferenceSummary {
	summary := DifferenceSummary{
		TotalSurplus:  decimal.Zero,
		TotalShortage: decimal.Zero,
	}
	for i := range st.Items {
		diff := st.Items[i].Difference
		if diff.IsZero() {
			continue
		}
		summary.DifferingItemCount++
		if diff.IsPositive() {
			summary.TotalSurplus = summary.TotalSurplus.Add(diff)
		} else {
			summary.TotalShortage = summary.TotalShortage.Add(diff.Abs())
		}
	}
	return summary
}

// NewStockTakingCompletedError reports a mutation against a completed
// stock-take
func NewStockTakingCompletedError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError("STOCK_TAKING_COMPLETED",
		fmt.Sprintf("Stock taking %s is already completed", id))
}
