package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
)

// AdjustRequest contains input for a manual stock adjustment
type AdjustRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// RecordListFilter contains filtering options for inventory listing
type RecordListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	HasStock *bool  `form:"has_stock"`
}

// RecordResponse is the API representation of an inventory record
type RecordResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToRecordResponse converts a domain record to its API representation
func ToRecordResponse(r *inventory.Record) RecordResponse {
	return RecordResponse{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToRecordResponses converts a slice of domain records
func ToRecordResponses(records []inventory.Record) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}
