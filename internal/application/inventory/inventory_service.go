package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// InventoryService is the ledger front: the only write paths into stock
// quantities are the atomic adjust operations below.
type InventoryService struct {
	recordRepo  inventory.RecordRepository
	productRepo catalog.ProductRepository
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(recordRepo inventory.RecordRepository, productRepo catalog.ProductRepository) *InventoryService {
	return &InventoryService{
		recordRepo:  recordRepo,
		productRepo: productRepo,
	}
}

// GetByProductID returns the inventory record for a product. A product
// without a record reads as zero stock.
func (s *InventoryService) GetByProductID(ctx context.Context, productID uuid.UUID) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &RecordResponse{ProductID: productID, Quantity: 0}, nil
		}
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// List retrieves inventory records with filtering and pagination
func (s *InventoryService) List(ctx context.Context, filter RecordListFilter) ([]RecordResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if filter.HasStock != nil {
		domainFilter.Filters["has_stock"] = *filter.HasStock
	}

	records, err := s.recordRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.recordRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRecordResponses(records), total, nil
}

// CheckAvailability reports whether current stock covers the requested quantity
func (s *InventoryService) CheckAvailability(ctx context.Context, productID uuid.UUID, requestedQty int64) (bool, error) {
	if requestedQty <= 0 {
		return false, shared.NewDomainError(shared.CodeValidation, "Requested quantity must be positive")
	}

	record, err := s.recordRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.CanFulfill(requestedQty), nil
}

// Increment adds stock for a product. Used for restocking and uploads.
func (s *InventoryService) Increment(ctx context.Context, productID uuid.UUID, qty int64) (*RecordResponse, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity must be positive")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}

	if err := s.recordRepo.EnsureExists(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.recordRepo.AdjustQuantity(ctx, productID, qty); err != nil {
		return nil, err
	}

	return s.GetByProductID(ctx, productID)
}

// Decrement removes stock for a product. Fails with InsufficientStock when
// the guarded update rejects the row; stock is never driven negative.
func (s *InventoryService) Decrement(ctx context.Context, productID uuid.UUID, qty int64) (*RecordResponse, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity must be positive")
	}

	if err := s.recordRepo.AdjustQuantity(ctx, productID, -qty); err != nil {
		return nil, err
	}

	return s.GetByProductID(ctx, productID)
}

// EnsureExists idempotently provisions a zero-quantity record
func (s *InventoryService) EnsureExists(ctx context.Context, productID uuid.UUID) error {
	return s.recordRepo.EnsureExists(ctx, productID)
}
