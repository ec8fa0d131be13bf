package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/partner"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo   catalog.ProductRepository
	clientRepo    partner.ClientRepository
	inventoryRepo inventory.RecordRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	clientRepo partner.ClientRepository,
	inventoryRepo inventory.RecordRepository,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		clientRepo:    clientRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Create creates a new product and provisions its zero-quantity inventory record
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	// Barcode is the unique business key
	if _, err := s.productRepo.FindByBarcode(ctx, req.Barcode); err == nil {
		return nil, shared.NewDomainError(shared.CodeConflict, "Product with this barcode already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// The owning client must exist
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Client not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(req.Barcode, req.ClientID, req.Name, valueobject.NewMoneyINR(req.MRP))
	if err != nil {
		return nil, err
	}

	if req.ImageURL != "" {
		product.SetImageURL(req.ImageURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	// Absence of a record means zero stock, but provisioning it here keeps
	// the restock path a plain update
	if err := s.inventoryRepo.EnsureExists(ctx, product.ID); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode retrieves a product by barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product's name and MRP
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, valueobject.NewMoneyINR(req.MRP)); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetImage sets a product's image URL
func (s *ProductService) SetImage(ctx context.Context, productID uuid.UUID, req SetImageRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.SetImageURL(req.ImageURL)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product. Order history survives deletion: historical
// reads substitute placeholders for the missing catalog row.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, productID)
}
