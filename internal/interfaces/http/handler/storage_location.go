package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shoplite/backend/internal/application/catalog"
	"github.com/shoplite/backend/internal/interfaces/http/dto"
)

// StorageLocationHandler handles storage location API endpoints
type StorageLocationHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewStorageLocationHandler creates a new StorageLocationHandler
func NewStorageLocationHandler(productService *catalogapp.ProductService) *StorageLocationHandler {
	return &StorageLocationHandler{productService: productService}
}

// Create creates a new storage location
func (h *StorageLocationHandler) Create(c *gin.Context) {
	var req catalogapp.CreateStorageLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	location, err := h.productService.CreateLocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// List lists storage locations
func (h *StorageLocationHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	locations, err := h.productService.ListLocations(c.Request.Context(), buildFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, locations)
}

// Update renames a storage location
func (h *StorageLocationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req catalogapp.UpdateStorageLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	location, err := h.productService.UpdateLocation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Delete removes a storage location
func (h *StorageLocationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.productService.DeleteLocation(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AssignProduct links a product to a storage location
func (h *StorageLocationHandler) AssignProduct(c *gin.Context) {
	h.updateAssignment(c, h.productService.AssignLocation)
}

// UnassignProduct removes the link between a product and a storage location
func (h *StorageLocationHandler) UnassignProduct(c *gin.Context) {
	h.updateAssignment(c, h.productService.UnassignLocation)
}

func (h *StorageLocationHandler) updateAssignment(c *gin.Context, fn func(ctx context.Context, productID, locationID uuid.UUID) error) {
	locationID, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := fn(c.Request.Context(), productID, locationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
