package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoiceapp "github.com/slippery-operator/pos-sub001/internal/application/invoice"
)

// InvoiceHandler handles invoice generation and retrieval endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate renders and stores the invoice for a committed order, then
// serves the document. Repeated calls serve the originally stored PDF.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	servePDF(c, result)
}

// Get serves the stored invoice for an order, 404 when none exists yet
func (h *InvoiceHandler) Get(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	result, err := h.invoiceService.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	servePDF(c, result)
}

func servePDF(c *gin.Context, result *invoiceapp.Result) {
	c.Header("Content-Disposition", `inline; filename="`+result.OrderID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
