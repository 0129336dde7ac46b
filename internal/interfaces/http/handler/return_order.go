package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	tradeapp "github.com/shoplite/backend/internal/application/trade"
	"github.com/shoplite/backend/internal/interfaces/http/dto"
)

// ReturnOrderHandler handles return order API endpoints
type ReturnOrderHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnOrderService
}

// NewReturnOrderHandler creates a new ReturnOrderHandler
func NewReturnOrderHandler(returnService *tradeapp.ReturnOrderService) *ReturnOrderHandler {
	return &ReturnOrderHandler{returnService: returnService}
}

// CreatePurchaseReturn creates a pending return against a confirmed
// purchase order
func (h *ReturnOrderHandler) CreatePurchaseReturn(c *gin.Context) {
	h.create(c, h.returnService.CreatePurchaseReturn)
}

// CreateSalesReturn creates a pending return against a confirmed
// sales order
func (h *ReturnOrderHandler) CreateSalesReturn(c *gin.Context) {
	h.create(c, h.returnService.CreateSalesReturn)
}

func (h *ReturnOrderHandler) create(c *gin.Context, fn func(ctx context.Context, req tradeapp.CreateReturnRequest) (*tradeapp.ReturnOrderResponse, error)) {
	var req tradeapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := fn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Confirm confirms the return and books the stock movement
func (h *ReturnOrderHandler) Confirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.returnService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetByID retrieves a return order with its items
func (h *ReturnOrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List lists return orders
func (h *ReturnOrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, err := h.returnService.List(c.Request.Context(), buildFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Delete deletes a pending return order
func (h *ReturnOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.returnService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
