package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/slippery-operator/pos-sub001/internal/application/catalog"
	inventoryapp "github.com/slippery-operator/pos-sub001/internal/application/inventory"
	invoiceapp "github.com/slippery-operator/pos-sub001/internal/application/invoice"
	orderapp "github.com/slippery-operator/pos-sub001/internal/application/order"
	partnerapp "github.com/slippery-operator/pos-sub001/internal/application/partner"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/auth"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/cache"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/config"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/logger"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/persistence"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/handler"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/router"
	"github.com/slippery-operator/pos-sub001/internal/invoice"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Idempotency store: Redis when reachable, in-process otherwise.
	// The in-process store still protects against double submission from
	// a single server instance.
	var idempotency shared.IdempotencyStore
	redisStore, err := cache.NewRedisIdempotencyStore(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotency = cache.NewInMemoryIdempotencyStore()
	} else {
		defer redisStore.Close()
		idempotency = redisStore
	}

	// Application services
	clientService := partnerapp.NewClientService(clientRepo)
	productService := catalogapp.NewProductService(productRepo, clientRepo, recordRepo)
	resolver := catalogapp.NewProductResolver(productRepo)
	inventoryService := inventoryapp.NewInventoryService(recordRepo, productRepo)
	orderService := orderapp.NewOrderService(
		resolver, productRepo, recordRepo, orderRepo, txScope, idempotency, log)

	renderClient := invoice.NewClient(cfg.Invoice.ServiceURL, cfg.Invoice.Timeout)
	invoiceService := invoiceapp.NewInvoiceService(
		orderRepo, orderService, renderClient, cfg.Invoice.StorageDir, log)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	verifier := auth.NewCredentialVerifier(cfg.Auth)

	engine := router.Setup(router.Handlers{
		System:    handler.NewSystemHandler(db),
		Auth:      handler.NewAuthHandler(verifier, jwtService),
		Client:    handler.NewClientHandler(clientService),
		Product:   handler.NewProductHandler(productService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Order:     handler.NewOrderHandler(orderService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
	}, jwtService, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
