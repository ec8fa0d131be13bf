package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordRepository implements inventory.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByProductID finds the inventory record for a product
func (r *GormRecordRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Record, error) {
	var record inventory.Record
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductIDs fetches records for a set of products in one query
func (r *GormRecordRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.Record, error) {
	if len(productIDs) == 0 {
		return []inventory.Record{}, nil
	}

	var records []inventory.Record
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds all inventory records matching the filter
func (r *GormRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Record, error) {
	var records []inventory.Record
	query := applyFilter(r.db.WithContext(ctx).Model(&inventory.Record{}), filter, nil)

	if hasStock, ok := filter.Filters["has_stock"]; ok && hasStock == true {
		query = query.Where("quantity > 0")
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts inventory records matching the filter
func (r *GormRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Record{})

	if hasStock, ok := filter.Filters["has_stock"]; ok && hasStock == true {
		query = query.Where("quantity > 0")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// EnsureExists idempotently creates a zero-quantity record for the product.
// Uses ON CONFLICT DO NOTHING so concurrent callers cannot race.
func (r *GormRecordRepository) EnsureExists(ctx context.Context, productID uuid.UUID) error {
	record, err := inventory.NewRecord(productID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).
		Create(record).Error
}

// AdjustQuantity atomically applies delta to the product's stock.
//
// Decrements carry a sufficiency guard in the WHERE clause so the check and
// the write are one statement; concurrent decrements serialize on the row
// and the loser fails cleanly instead of driving the quantity negative.
func (r *GormRecordRepository) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int64) error {
	if delta == 0 {
		return nil
	}

	query := r.db.WithContext(ctx).
		Model(&inventory.Record{}).
		Where("product_id = ?", productID)

	if delta < 0 {
		query = query.Where("quantity >= ?", -delta)
	}

	result := query.Updates(map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", delta),
		"version":    gorm.Expr("version + 1"),
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if delta < 0 {
			// Distinguish missing record from insufficient stock
			if _, err := r.FindByProductID(ctx, productID); err != nil {
				return err
			}
			return shared.ErrInsufficientStock
		}
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRecordRepository implements RecordRepository
var _ inventory.RecordRepository = (*GormRecordRepository)(nil)
