package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/config"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/logger"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/middleware"
	"github.com/slippery-operator/pos-sub001/internal/invoice"
	"go.uber.org/zap"
)

// invoiced is the stateless invoice rendering service. It accepts an
// order snapshot over HTTP and returns a PDF rendered through headless
// Chrome. It holds no database connection.
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

	port := os.Getenv("POS_INVOICE_PORT")
	if port == "" {
		port = "8081"
	}

	renderer := invoice.NewRenderer(&invoice.RendererConfig{
		Timeout:   cfg.Invoice.Timeout,
		NoSandbox: cfg.Invoice.NoSandbox,
		Logger:    log,
	})
	defer renderer.Close()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)
	invoice.NewHandler(renderer, log).RegisterRoutes(engine)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Invoice service listening", zap.String("addr", srv.Addr))
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
	log.Info("Invoice service stopped")
}
