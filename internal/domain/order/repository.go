package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SearchCriteria filters order lookups. All fields are optional and
// combinable; the time range is inclusive on both ends.
type SearchCriteria struct {
	StartTime *time.Time
	EndTime   *time.Time
	OrderID   *uuid.UUID
}

// Repository defines persistence operations for orders.
// Save persists the order header and its items together; callers needing
// atomicity with inventory mutations go through the transaction scope.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	// UpdateInvoicePath persists the one-time invoice annotation.
	UpdateInvoicePath(ctx context.Context, o *Order) error
}
