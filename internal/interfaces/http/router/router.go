package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shoplite/backend/internal/infrastructure/config"
	"github.com/shoplite/backend/internal/infrastructure/logger"
	"github.com/shoplite/backend/internal/interfaces/http/handler"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System          *handler.SystemHandler
	Product         *handler.ProductHandler
	StorageLocation *handler.StorageLocationHandler
	Inventory       *handler.InventoryHandler
	StockTaking     *handler.StockTakingHandler
	PurchaseOrder   *handler.PurchaseOrderHandler
	SalesOrder      *handler.SalesOrderHandler
	ReturnOrder     *handler.ReturnOrderHandler
	Report          *handler.ReportHandler
}

// New builds the gin engine with middleware and all API routes mounted
// under /api/v1
func New(cfg *config.Config, log *zap.Logger, h Handlers) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	products := api.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.Search)
		products.GET("/:id", h.Product.GetByID)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/units", h.Product.AddPackageUnit)
		products.DELETE("/:id/units/:unit", h.Product.RemovePackageUnit)
		products.GET("/:id/price", h.Product.GetUnitPrice)
	}

	locations := api.Group("/storage-locations")
	{
		locations.POST("", h.StorageLocation.Create)
		locations.GET("", h.StorageLocation.List)
		locations.PUT("/:id", h.StorageLocation.Update)
		locations.DELETE("/:id", h.StorageLocation.Delete)
		locations.PUT("/:id/products/:productId", h.StorageLocation.AssignProduct)
		locations.DELETE("/:id/products/:productId", h.StorageLocation.UnassignProduct)
	}

	inventory := api.Group("/inventory")
	{
		inventory.POST("/adjustments", h.Inventory.Adjust)
		inventory.PUT("/quantity", h.Inventory.SetQuantity)
		inventory.GET("/records/:id", h.Inventory.GetRecord)
		inventory.GET("/records/:id/availability", h.Inventory.CheckAvailability)
		inventory.GET("/low-stock", h.Inventory.LowStock)
		inventory.GET("/transactions", h.Inventory.ListTransactions)
	}

	stockTakings := api.Group("/stock-takings")
	{
		stockTakings.POST("", h.StockTaking.Create)
		stockTakings.GET("", h.StockTaking.List)
		stockTakings.GET("/:id", h.StockTaking.GetByID)
		stockTakings.PUT("/:id/items", h.StockTaking.RecordActualQuantity)
		stockTakings.POST("/:id/complete", h.StockTaking.Complete)
		stockTakings.GET("/:id/summary", h.StockTaking.DifferenceSummary)
	}

	purchaseOrders := api.Group("/purchase-orders")
	{
		purchaseOrders.POST("", h.PurchaseOrder.Create)
		purchaseOrders.GET("", h.PurchaseOrder.List)
		purchaseOrders.GET("/:id", h.PurchaseOrder.GetByID)
		purchaseOrders.POST("/:id/confirm", h.PurchaseOrder.Confirm)
		purchaseOrders.DELETE("/:id", h.PurchaseOrder.Delete)
	}

	salesOrders := api.Group("/sales-orders")
	{
		salesOrders.POST("", h.SalesOrder.Create)
		salesOrders.GET("", h.SalesOrder.List)
		salesOrders.GET("/:id", h.SalesOrder.GetByID)
		salesOrders.POST("/:id/items", h.SalesOrder.AddItem)
		salesOrders.POST("/:id/discount", h.SalesOrder.ApplyDiscount)
		salesOrders.POST("/:id/rounding", h.SalesOrder.ApplyRounding)
		salesOrders.PUT("/:id/items/price", h.SalesOrder.AdjustItemPrice)
		salesOrders.POST("/:id/confirm", h.SalesOrder.Confirm)
		salesOrders.DELETE("/:id", h.SalesOrder.Delete)
	}

	returns := api.Group("/returns")
	{
		returns.POST("/purchase", h.ReturnOrder.CreatePurchaseReturn)
		returns.POST("/sales", h.ReturnOrder.CreateSalesReturn)
		returns.GET("", h.ReturnOrder.List)
		returns.GET("/:id", h.ReturnOrder.GetByID)
		returns.POST("/:id/confirm", h.ReturnOrder.Confirm)
		returns.DELETE("/:id", h.ReturnOrder.Delete)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/sales-summary", h.Report.SalesSummary)
		reports.GET("/gross-profit", h.Report.GrossProfit)
		reports.GET("/top-sellers", h.Report.TopSellingProducts)
	}

	return engine, nil
}
