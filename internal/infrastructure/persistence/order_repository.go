package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Search finds orders matching the criteria, newest first. The time range
// is inclusive on both ends.
func (r *GormOrderRepository) Search(ctx context.Context, criteria order.SearchCriteria) ([]order.Order, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items")

	if criteria.OrderID != nil {
		query = query.Where("id = ?", *criteria.OrderID)
	}
	if criteria.StartTime != nil {
		query = query.Where("created_at >= ?", *criteria.StartTime)
	}
	if criteria.EndTime != nil {
		query = query.Where("created_at <= ?", *criteria.EndTime)
	}

	var orders []order.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order header and its line items together
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// UpdateInvoicePath persists the one-time invoice annotation. The guard on
// the current invoice_path keeps the write-once rule honest under races.
func (r *GormOrderRepository) UpdateInvoicePath(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND (invoice_path IS NULL OR invoice_path = '')", o.ID).
		Updates(map[string]interface{}{
			"invoice_path": o.InvoicePath,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   o.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, o.ID); err != nil {
			return err
		}
		return shared.NewDomainError(shared.CodeConflict, "Order already has an invoice attached")
	}
	return nil
}

// Ensure GormOrderRepository implements Repository
var _ order.Repository = (*GormOrderRepository)(nil)
