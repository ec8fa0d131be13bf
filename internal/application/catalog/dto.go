package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
)

// CreateProductRequest contains input for product creation
type CreateProductRequest struct {
	Barcode  string          `json:"barcode" binding:"required,max=50"`
	ClientID uuid.UUID       `json:"client_id" binding:"required"`
	Name     string          `json:"name" binding:"required,max=200"`
	MRP      decimal.Decimal `json:"mrp" binding:"required"`
	ImageURL string          `json:"image_url" binding:"omitempty,url"`
}

// UpdateProductRequest contains input for product updates.
// The barcode is immutable and absent on purpose.
type UpdateProductRequest struct {
	Name string          `json:"name" binding:"required,max=200"`
	MRP  decimal.Decimal `json:"mrp" binding:"required"`
}

// SetImageRequest contains input for setting a product image
type SetImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// ProductListFilter contains filtering options for product listing
type ProductListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
	Search   string     `form:"search"`
	ClientID *uuid.UUID `form:"client_id"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Barcode   string          `json:"barcode"`
	ClientID  uuid.UUID       `json:"client_id"`
	Name      string          `json:"name"`
	MRP       decimal.Decimal `json:"mrp"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductInfo is the resolved identity and price of a product, keyed by
// barcode in the resolver result.
type ProductInfo struct {
	ID      uuid.UUID
	Barcode string
	Name    string
	MRP     decimal.Decimal
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Barcode:   p.Barcode,
		ClientID:  p.ClientID,
		Name:      p.Name,
		MRP:       p.MRP,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToProductInfo converts a domain product to resolver output
func ToProductInfo(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:      p.ID,
		Barcode: p.Barcode,
		Name:    p.Name,
		MRP:     p.MRP,
	}
}
