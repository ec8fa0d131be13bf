package inventory

import (
	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// Record holds the stock quantity for a single product. The quantity is the
// only contended resource in the system: it is mutated exclusively through the
// ledger's atomic conditional update, never by read-modify-write from other
// code paths, so it stays non-negative across process restarts and multiple
// server instances.
type Record struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product"`
	Quantity  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "inventory_records"
}

// NewRecord creates a zero-quantity inventory record for a product.
// A record is provisioned whenever a product is created; absence of a record
// means zero stock.
func NewRecord(productID uuid.UUID) (*Record, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
	}, nil
}

// CanFulfill returns true if the current quantity covers the requested amount
func (r *Record) CanFulfill(qty int64) bool {
	return r.Quantity >= qty
}
