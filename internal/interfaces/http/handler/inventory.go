package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/slippery-operator/pos-sub001/internal/application/inventory"
)

// InventoryHandler handles inventory-related API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetByProductID returns the stock level for a product. Products without
// a record read as zero stock.
func (h *InventoryHandler) GetByProductID(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	record, err := h.inventoryService.GetByProductID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// List retrieves inventory records with pagination and stock filtering
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, total, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, records, total, page, pageSize)
}

// Increment adds stock for a product
func (h *InventoryHandler) Increment(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req inventoryapp.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.Increment(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// Decrement removes stock for a product. Rejected with 422 when stock
// does not cover the requested quantity.
func (h *InventoryHandler) Decrement(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req inventoryapp.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.Decrement(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// Import bulk-increments stock from an uploaded TSV file
func (h *InventoryHandler) Import(c *gin.Context) {
	file, err := openUpload(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	defer file.Close()

	result, err := h.inventoryService.ImportTSV(c.Request.Context(), file)
	if err != nil {
		if result == nil {
			h.HandleError(c, err)
			return
		}
		respondImportFailure(c, result, err)
		return
	}

	h.Success(c, result)
}
