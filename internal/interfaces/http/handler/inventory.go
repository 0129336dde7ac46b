package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	invapp "github.com/shoplite/backend/internal/application/inventory"
)

// InventoryHandler handles inventory API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *invapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *invapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Adjust books a manual stock adjustment and writes a ledger entry
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req invapp.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.inventoryService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// SetQuantity pins a product's stock to an absolute value, recording
// the difference as an adjustment
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	var req invapp.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.inventoryService.SetQuantity(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// GetRecord retrieves the current stock of a product
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	record, err := h.inventoryService.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// LowStock lists products at or below their minimum stock threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CheckAvailability checks whether a quantity in a given unit is in stock
func (h *InventoryHandler) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		h.BadRequest(c, "Query parameter 'quantity' must be a number")
		return
	}
	unit := c.Query("unit")
	if unit == "" {
		h.BadRequest(c, "Query parameter 'unit' is required")
		return
	}

	available, err := h.inventoryService.CheckStockAvailability(c.Request.Context(), id, quantity, unit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"available": available})
}

// ListTransactions lists ledger entries, newest first
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var req invapp.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.inventoryService.ListTransactions(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
