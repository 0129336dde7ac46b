package handler

import (
	"github.com/gin-gonic/gin"

	invapp "github.com/shoplite/backend/internal/application/inventory"
	"github.com/shoplite/backend/internal/interfaces/http/dto"
)

// StockTakingHandler handles stock-taking API endpoints
type StockTakingHandler struct {
	BaseHandler
	stockTakingService *invapp.StockTakingService
}

// NewStockTakingHandler creates a new StockTakingHandler
func NewStockTakingHandler(stockTakingService *invapp.StockTakingService) *StockTakingHandler {
	return &StockTakingHandler{stockTakingService: stockTakingService}
}

// Create starts a stock-take with a snapshot of the whole catalog
func (h *StockTakingHandler) Create(c *gin.Context) {
	var req invapp.CreateStockTakingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	taking, err := h.stockTakingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, taking)
}

// RecordActualQuantity records a counted quantity for one product
func (h *StockTakingHandler) RecordActualQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid stock-taking ID")
		return
	}

	var req invapp.RecordActualQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	taking, err := h.stockTakingService.RecordActualQuantity(c.Request.Context(), id, req.ProductID, req.ActualQuantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, taking)
}

// Complete finishes the stock-take and reconciles every difference
// into the ledger
func (h *StockTakingHandler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid stock-taking ID")
		return
	}

	taking, err := h.stockTakingService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, taking)
}

// GetByID retrieves a stock-take with its item snapshot
func (h *StockTakingHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid stock-taking ID")
		return
	}

	taking, err := h.stockTakingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, taking)
}

// List lists stock-takes, newest first
func (h *StockTakingHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	takings, err := h.stockTakingService.List(c.Request.Context(), buildFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, takings)
}

// DifferenceSummary summarizes the overages and shortages of a stock-take
func (h *StockTakingHandler) DifferenceSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid stock-taking ID")
		return
	}

	summary, err := h.stockTakingService.GetDifferenceSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
