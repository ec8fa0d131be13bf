package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
)

// Placeholders substituted when an item's product has since been deleted
// from the catalog. Order history stays viewable regardless.
const (
	PlaceholderProductName = "Product Not Found"
	PlaceholderBarcode     = "N/A"
)

// CreateOrderItem is one submitted line: a scanned barcode, a quantity and
// the price the item was sold at. ExpectedTotal is an optional client-side
// line total used as a consistency check.
type CreateOrderItem struct {
	Barcode       string           `json:"barcode" binding:"required,max=50"`
	Quantity      int64            `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal  `json:"unit_price" binding:"required"`
	ExpectedTotal *decimal.Decimal `json:"expected_total,omitempty"`
}

// CreateOrderRequest contains input for order creation
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items" binding:"required"`
}

// SearchFilter contains the optional, combinable order search criteria
type SearchFilter struct {
	StartTime *time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   *time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
	OrderID   *uuid.UUID `form:"order_id"`
}

// OrderItemView is the read-side representation of one line item, with the
// product's current name and barcode backfilled from the catalog.
type OrderItemView struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Barcode      string          `json:"barcode"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// OrderView is the read-side representation of an order
type OrderView struct {
	ID          uuid.UUID       `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItemView `json:"items"`
	Total       decimal.Decimal `json:"total"`
	InvoicePath string          `json:"invoice_path,omitempty"`
}

// productIdentity is what the view composer needs from the catalog
type productIdentity struct {
	Barcode string
	Name    string
}

// toOrderView composes the view of one order given a product identity map.
// Products missing from the map get placeholder values.
func toOrderView(o *order.Order, products map[uuid.UUID]productIdentity) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		view := OrderItemView{
			ProductID:    item.ProductID,
			Barcode:      PlaceholderBarcode,
			ProductName:  PlaceholderProductName,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
			LineTotal:    item.Amount(),
		}
		if identity, ok := products[item.ProductID]; ok {
			view.Barcode = identity.Barcode
			view.ProductName = identity.Name
		}
		items[i] = view
	}

	return OrderView{
		ID:          o.ID,
		CreatedAt:   o.CreatedAt,
		Items:       items,
		Total:       o.Total(),
		InvoicePath: o.InvoicePath,
	}
}
