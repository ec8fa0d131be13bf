package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/slippery-operator/pos-sub001/internal/application/order"
)

// IdempotencyKeyHeader carries the optional client-generated key that
// protects order submission against retries
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create commits a new order. The response is the persisted order read
// back from storage, not an echo of the input.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	view, err := h.orderService.Create(c.Request.Context(), req, idempotencyKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, view)
}

// GetByID retrieves an order with product names backfilled from the catalog
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	view, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Search retrieves orders matching the optional time range and order ID
// filters. An empty result is a 200 with an empty list.
func (h *OrderHandler) Search(c *gin.Context) {
	var filter orderapp.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	views, err := h.orderService.Search(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}
