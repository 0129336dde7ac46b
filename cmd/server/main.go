package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/shoplite/backend/internal/application/catalog"
	inventoryapp "github.com/shoplite/backend/internal/application/inventory"
	reportapp "github.com/shoplite/backend/internal/application/report"
	tradeapp "github.com/shoplite/backend/internal/application/trade"
	"github.com/shoplite/backend/internal/infrastructure/config"
	"github.com/shoplite/backend/internal/infrastructure/event"
	"github.com/shoplite/backend/internal/infrastructure/logger"
	"github.com/shoplite/backend/internal/infrastructure/persistence"
	"github.com/shoplite/backend/internal/interfaces/http/handler"
	"github.com/shoplite/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting shoplite backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	locationRepo := persistence.NewGormStorageLocationRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	transactionRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	stockTakingRepo := persistence.NewGormStockTakingRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	returnOrderRepo := persistence.NewGormReturnOrderRepository(db.DB)
	usageChecker := persistence.NewGormUsageChecker(db.DB)

	scope := persistence.NewGormTransactionScope(db.DB)
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	productService := catalogapp.NewProductService(scope, productRepo, locationRepo, usageChecker)
	inventoryService := inventoryapp.NewInventoryService(scope, productRepo, inventoryRepo, transactionRepo)
	stockTakingService := inventoryapp.NewStockTakingService(scope, stockTakingRepo, inventoryService)
	purchaseService := tradeapp.NewPurchaseOrderService(scope, purchaseOrderRepo, inventoryService)
	salesService := tradeapp.NewSalesOrderService(scope, salesOrderRepo, productRepo, inventoryRepo, inventoryService)
	returnService := tradeapp.NewReturnOrderService(scope, returnOrderRepo, purchaseOrderRepo, salesOrderRepo, productRepo, inventoryService)
	statisticsService := reportapp.NewStatisticsService(salesOrderRepo, productRepo)

	productService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	stockTakingService.SetEventPublisher(eventBus)
	purchaseService.SetEventPublisher(eventBus)
	salesService.SetEventPublisher(eventBus)
	returnService.SetEventPublisher(eventBus)

	engine, err := router.New(cfg, log, router.Handlers{
		System:          handler.NewSystemHandler(db),
		Product:         handler.NewProductHandler(productService),
		StorageLocation: handler.NewStorageLocationHandler(productService),
		Inventory:       handler.NewInventoryHandler(inventoryService),
		StockTaking:     handler.NewStockTakingHandler(stockTakingService),
		PurchaseOrder:   handler.NewPurchaseOrderHandler(purchaseService),
		SalesOrder:      handler.NewSalesOrderHandler(salesService),
		ReturnOrder:     handler.NewReturnOrderHandler(returnService),
		Report:          handler.NewReportHandler(statisticsService),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
