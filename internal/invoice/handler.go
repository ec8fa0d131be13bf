package invoice

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the stateless rendering endpoint of the invoice service
type Handler struct {
	renderer *Renderer
	logger   *zap.Logger
}

// NewHandler creates a new invoice Handler
func NewHandler(renderer *Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes registers the invoice service routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/invoice", h.Render)
	router.GET("/health", h.Health)
}

// Render accepts an order snapshot and responds with a base64-encoded PDF
func (h *Handler) Render(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	html, err := RenderHTML(&req)
	if err != nil {
		h.logger.Error("Template rendering failed",
			zap.String("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "template rendering failed"})
		return
	}

	pdf, err := h.renderer.RenderPDF(c.Request.Context(), html)
	if err != nil {
		h.logger.Error("PDF rendering failed",
			zap.String("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pdf rendering failed"})
		return
	}

	c.JSON(http.StatusOK, Response{
		PDFBase64: base64.StdEncoding.EncodeToString(pdf),
	})
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
