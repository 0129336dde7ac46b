package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shoplite/backend/internal/application/catalog"
	"github.com/shoplite/backend/internal/domain/catalog"
)

// ProductHandler handles product catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create creates a new product with a generated code and a zero
// inventory record
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID retrieves a product by its ID
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Search finds products by keyword and optional storage location
func (h *ProductHandler) Search(c *gin.Context) {
	var req catalogapp.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	products, err := h.productService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Update partially updates a product's descriptive fields and prices
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete deletes a product unless historical documents reference it
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddPackageUnit adds a package unit to a product
func (h *ProductHandler) AddPackageUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.AddPackageUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	unit, err := h.productService.AddPackageUnit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

// RemovePackageUnit removes a package unit unless order lines use it
func (h *ProductHandler) RemovePackageUnit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	unitName := c.Param("unit")
	if err := h.productService.RemovePackageUnit(c.Request.Context(), id, unitName); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetUnitPrice resolves the effective purchase or retail price of a
// product in the given unit
func (h *ProductHandler) GetUnitPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	unit := c.Query("unit")
	if unit == "" {
		h.BadRequest(c, "Query parameter 'unit' is required")
		return
	}

	priceType := catalog.PriceType(c.DefaultQuery("price_type", string(catalog.PriceTypeRetail)))
	if !priceType.IsValid() {
		h.BadRequest(c, "Query parameter 'price_type' must be 'purchase' or 'retail'")
		return
	}

	price, err := h.productService.GetUnitPrice(c.Request.Context(), id, unit, priceType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unit": unit, "price_type": priceType, "price": price})
}
