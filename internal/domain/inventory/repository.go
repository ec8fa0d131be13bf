package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// RecordRepository defines persistence operations for inventory records.
//
// AdjustQuantity is the single write path for stock. A negative delta is a
// conditional update (decrement-if-sufficient) executed as one statement, so
// two concurrent decrements against the same product serialize at the row and
// the losing one observes the remaining quantity - no lost updates, no
// negative stock ever persisted.
type RecordRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Record, error)
	// FindByProductIDs fetches records for a set of products in one query.
	// Products without a record are absent from the result (zero stock).
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]Record, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// EnsureExists idempotently creates a zero-quantity record for the product.
	EnsureExists(ctx context.Context, productID uuid.UUID) error
	// AdjustQuantity atomically applies delta to the product's quantity.
	// For delta < 0 the update carries a "quantity >= -delta" guard and
	// returns shared.ErrInsufficientStock when the guard rejects the row.
	AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int64) error
}
