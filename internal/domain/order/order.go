package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
)

// Item represents a line item in an order. The selling price is captured at
// sale time, independent of the product's current MRP, so historical totals
// stay correct when the catalog changes later.
type Item struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     int64           `gorm:"not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates a new order line item
func NewItem(orderID, productID uuid.UUID, quantity int64, sellingPrice valueobject.Money) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity must be positive")
	}
	if !sellingPrice.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Selling price must be positive")
	}

	return &Item{
		ID:           uuid.New(),
		OrderID:      orderID,
		ProductID:    productID,
		Quantity:     quantity,
		SellingPrice: sellingPrice.Amount(),
		CreatedAt:    time.Now(),
	}, nil
}

// Amount returns quantity * selling price for this line
func (i *Item) Amount() decimal.Decimal {
	return i.SellingPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is the aggregate root for a committed sale. Items are owned by the
// order (composition) and the whole aggregate is immutable after creation,
// except for the one-time invoice path annotation.
type Order struct {
	shared.BaseAggregateRoot
	Items       []Item `gorm:"foreignKey:OrderID;references:ID"`
	InvoicePath string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order with its line items. The item list must be
// non-empty; each (productID, quantity, sellingPrice) tuple becomes an
// independent line item, duplicates included.
func NewOrder(lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Order must contain at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Items:             make([]Item, 0, len(lines)),
	}

	for _, line := range lines {
		item, err := NewItem(o.ID, line.ProductID, line.Quantity, line.SellingPrice)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
	}

	return o, nil
}

// Line is the input for one order item
type Line struct {
	ProductID    uuid.UUID
	Quantity     int64
	SellingPrice valueobject.Money
}

// Total returns the grand total across all line items
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Amount())
	}
	return total
}

// TotalMoney returns the grand total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.Total())
}

// AttachInvoice records the generated invoice location. Written once; a
// second attachment is rejected so regeneration serves the stored document.
func (o *Order) AttachInvoice(path string) error {
	if path == "" {
		return shared.NewDomainError(shared.CodeValidation, "Invoice path cannot be empty")
	}
	if o.InvoicePath != "" {
		return shared.NewDomainError(shared.CodeConflict, "Order already has an invoice attached")
	}
	o.InvoicePath = path
	o.Touch()
	o.IncrementVersion()
	return nil
}

// HasInvoice reports whether an invoice has been generated for this order
func (o *Order) HasInvoice() bool {
	return o.InvoicePath != ""
}
