package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
)

// Product represents a sellable item in the catalog. The barcode is the
// immutable business key; the numeric id is internal.
type Product struct {
	shared.BaseAggregateRoot
	Barcode  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_barcode"`
	ClientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(200);not null"`
	MRP      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ImageURL string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(barcode string, clientID uuid.UUID, name string, mrp valueobject.Money) (*Product, error) {
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Client ID cannot be empty")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !mrp.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "MRP must be positive")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Barcode:           strings.TrimSpace(barcode),
		ClientID:          clientID,
		Name:              strings.TrimSpace(name),
		MRP:               mrp.Amount(),
	}, nil
}

// Update updates the product's mutable fields. The barcode is the immutable
// business key and cannot change after creation.
func (p *Product) Update(name string, mrp valueobject.Money) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !mrp.IsPositive() {
		return shared.NewDomainError(shared.CodeValidation, "MRP must be positive")
	}

	p.Name = strings.TrimSpace(name)
	p.MRP = mrp.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetImageURL sets the optional product image URL
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.Touch()
	p.IncrementVersion()
}

// GetMRPMoney returns the MRP as a Money value object
func (p *Product) GetMRPMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.MRP)
}

func validateBarcode(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return shared.NewDomainError(shared.CodeValidation, "Barcode cannot be empty")
	}
	if len(barcode) > 50 {
		return shared.NewDomainError(shared.CodeValidation, "Barcode cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeValidation, "Product name cannot exceed 200 characters")
	}
	return nil
}
