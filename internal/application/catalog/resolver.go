package catalog

import (
	"context"
	"sort"

	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// ProductResolver maps barcodes to product identity and price. It is the
// read-only front of the catalog used by the order write path.
type ProductResolver struct {
	productRepo catalog.ProductRepository
}

// NewProductResolver creates a new ProductResolver
func NewProductResolver(productRepo catalog.ProductRepository) *ProductResolver {
	return &ProductResolver{productRepo: productRepo}
}

// Resolve looks up the distinct set of barcodes in one batch query and
// returns a barcode-keyed map. When any barcode fails to resolve, the error
// enumerates every missing barcode, not just the first, so the caller can
// surface one complete validation report. No side effects.
func (r *ProductResolver) Resolve(ctx context.Context, barcodes []string) (map[string]ProductInfo, error) {
	if len(barcodes) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Barcode list cannot be empty")
	}

	distinct := make([]string, 0, len(barcodes))
	seen := make(map[string]bool, len(barcodes))
	for _, barcode := range barcodes {
		if !seen[barcode] {
			seen[barcode] = true
			distinct = append(distinct, barcode)
		}
	}

	products, err := r.productRepo.FindByBarcodes(ctx, distinct)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]ProductInfo, len(products))
	for i := range products {
		resolved[products[i].Barcode] = ToProductInfo(&products[i])
	}

	if len(resolved) < len(distinct) {
		missing := make([]string, 0, len(distinct)-len(resolved))
		for _, barcode := range distinct {
			if _, ok := resolved[barcode]; !ok {
				missing = append(missing, barcode)
			}
		}
		sort.Strings(missing)
		return nil, shared.NewDomainErrorWithDetails(shared.CodeNotFound, "Unknown barcodes", missing)
	}

	return resolved, nil
}
