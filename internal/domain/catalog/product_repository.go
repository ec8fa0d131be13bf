package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	// FindByBarcodes resolves a set of barcodes in one batch query.
	// Barcodes with no matching product are simply absent from the result.
	FindByBarcodes(ctx context.Context, barcodes []string) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
