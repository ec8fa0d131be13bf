package router

import (
	"github.com/gin-gonic/gin"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/auth"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/logger"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/handler"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every handler the router wires up
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Client    *handler.ClientHandler
	Product   *handler.ProductHandler
	Inventory *handler.InventoryHandler
	Order     *handler.OrderHandler
	Invoice   *handler.InvoiceHandler
}

// Setup builds the gin engine with middleware and all API routes.
// Everything under /api/v1 except health and login requires a valid
// session token.
func Setup(handlers Handlers, jwtService *auth.JWTService, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	engine.GET("/health", handlers.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService))

	api.GET("/health", handlers.System.Health)
	api.POST("/auth/login", handlers.Auth.Login)

	clients := api.Group("/clients")
	{
		clients.POST("", handlers.Client.Create)
		clients.GET("", handlers.Client.List)
		clients.GET("/:id", handlers.Client.GetByID)
		clients.PUT("/:id", handlers.Client.Update)
		clients.DELETE("/:id", handlers.Client.Delete)
	}

	products := api.Group("/products")
	{
		products.POST("", handlers.Product.Create)
		products.GET("", handlers.Product.List)
		products.POST("/import", handlers.Product.Import)
		products.GET("/barcode/:barcode", handlers.Product.GetByBarcode)
		products.GET("/:id", handlers.Product.GetByID)
		products.PUT("/:id", handlers.Product.Update)
		products.PUT("/:id/image", handlers.Product.SetImage)
		products.DELETE("/:id", handlers.Product.Delete)
	}

	inventory := api.Group("/inventory")
	{
		inventory.GET("", handlers.Inventory.List)
		inventory.POST("/import", handlers.Inventory.Import)
		inventory.GET("/:id", handlers.Inventory.GetByProductID)
		inventory.POST("/:id/increment", handlers.Inventory.Increment)
		inventory.POST("/:id/decrement", handlers.Inventory.Decrement)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", handlers.Order.Create)
		orders.GET("", handlers.Order.Search)
		orders.GET("/:id", handlers.Order.GetByID)
		orders.POST("/:id/invoice", handlers.Invoice.Generate)
		orders.GET("/:id/invoice", handlers.Invoice.Get)
	}

	return engine
}
