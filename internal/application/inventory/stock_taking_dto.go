package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/domain/inventory"
)

// CreateStockTakingRequest starts a stock-take, defaulting the date to now
type CreateStockTakingRequest struct {
	TakingDate *time.Time `json:"taking_date,omitempty" time_format:"2006-01-02"`
}

// RecordActualQuantityRequest records one counted quantity
type RecordActualQuantityRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// StockTakingItemResponse is one snapshot line
type StockTakingItemResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Unit           string          `json:"unit"`
	SystemQuantity decimal.Decimal `json:"system_quantity"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Difference     decimal.Decimal `json:"difference"`
}

// StockTakingResponse is the API shape of a stock-take
type StockTakingResponse struct {
	ID           uuid.UUID                 `json:"id"`
	TakingNumber string                    `json:"taking_number"`
	TakingDate   time.Time                 `json:"taking_date"`
	Status       inventory.StockTakingStatus `json:"status"`
	CompletedAt  *time.Time                `json:"completed_at,omitempty"`
	Items        []StockTakingItemResponse `json:"items"`
}

// ToStockTakingResponse maps a stock-take to its response shape
func ToStockTakingResponse(st *inventory.StockTaking) StockTakingResponse {
	items := make([]StockTakingItemResponse, 0, len(st.Items))
	for i := range st.Items {
		item := &st.Items[i]
		items = append(items, StockTakingItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Unit:           item.Unit,
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
			Difference:     item.Difference,
		})
	}
	return StockTakingResponse{
		ID:           st.ID,
		TakingNumber: st.TakingNumber,
		TakingDate:   st.TakingDate,
		Status:       st.Status,
		CompletedAt:  st.CompletedAt,
		Items:        items,
	}
}
