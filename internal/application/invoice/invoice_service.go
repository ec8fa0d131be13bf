package invoice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	apporder "github.com/slippery-operator/pos-sub001/internal/application/order"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/invoice"
	"go.uber.org/zap"
)

// Renderer renders a committed order snapshot into PDF bytes
type Renderer interface {
	Render(ctx context.Context, req *invoice.Request) ([]byte, error)
}

// OrderViewer supplies the composed order view used as the invoice snapshot
type OrderViewer interface {
	GetByID(ctx context.Context, orderID uuid.UUID) (*apporder.OrderView, error)
}

// InvoiceService generates and stores order invoices. An invoice is written
// once: regeneration serves the stored document instead of re-rendering.
type InvoiceService struct {
	orderRepo  order.Repository
	orders     OrderViewer
	renderer   Renderer
	storageDir string
	logger     *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	orderRepo order.Repository,
	orders OrderViewer,
	renderer Renderer,
	storageDir string,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		orderRepo:  orderRepo,
		orders:     orders,
		renderer:   renderer,
		storageDir: storageDir,
		logger:     logger,
	}
}

// Result carries the stored invoice document and its location
type Result struct {
	OrderID uuid.UUID `json:"order_id"`
	Path    string    `json:"path"`
	PDF     []byte    `json:"-"`
}

// Generate renders, stores and attaches the invoice for a committed order.
// Calling it again for the same order returns the stored document.
func (s *InvoiceService) Generate(ctx context.Context, orderID uuid.UUID) (*Result, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.HasInvoice() {
		return s.serveStored(o)
	}

	view, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(ctx, snapshotOf(view))
	if err != nil {
		s.logger.Error("Invoice rendering failed",
			zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Invoice rendering failed")
	}

	path := filepath.Join(s.storageDir, orderID.String()+".pdf")
	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create invoice directory: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}

	if err := o.AttachInvoice(path); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateInvoicePath(ctx, o); err != nil {
		// Lost a race: another generation attached first. Serve theirs.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.CodeConflict {
			stored, ferr := s.orderRepo.FindByID(ctx, orderID)
			if ferr != nil {
				return nil, ferr
			}
			return s.serveStored(stored)
		}
		return nil, err
	}

	s.logger.Info("Invoice generated",
		zap.String("order_id", orderID.String()),
		zap.String("path", path),
		zap.Int("bytes", len(pdf)))

	return &Result{OrderID: orderID, Path: path, PDF: pdf}, nil
}

// Get returns the stored invoice for an order, or NotFound if none has been
// generated yet
func (s *InvoiceService) Get(ctx context.Context, orderID uuid.UUID) (*Result, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.HasInvoice() {
		return nil, shared.NewDomainError(shared.CodeNotFound, "No invoice has been generated for this order")
	}
	return s.serveStored(o)
}

func (s *InvoiceService) serveStored(o *order.Order) (*Result, error) {
	pdf, err := os.ReadFile(o.InvoicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored invoice: %w", err)
	}
	return &Result{OrderID: o.ID, Path: o.InvoicePath, PDF: pdf}, nil
}

// snapshotOf converts the composed order view into the renderer payload
func snapshotOf(view *apporder.OrderView) *invoice.Request {
	items := make([]invoice.Item, len(view.Items))
	for i, item := range view.Items {
		items[i] = invoice.Item{
			Barcode:   item.Barcode,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.SellingPrice,
			LineTotal: item.LineTotal,
		}
	}
	return &invoice.Request{
		OrderID:   view.ID.String(),
		CreatedAt: view.CreatedAt,
		Items:     items,
		Total:     view.Total,
		Currency:  "INR",
	}
}
