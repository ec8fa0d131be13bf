package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcatalog "github.com/slippery-operator/pos-sub001/internal/application/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// expectedTotalEpsilon is the tolerance for the optional client-supplied
// line total check, one hundredth of a currency unit.
var expectedTotalEpsilon = decimal.NewFromFloat(0.01)

// idempotencyTTL is how long a submitted idempotency key blocks replays
const idempotencyTTL = 24 * time.Hour

// BarcodeResolver resolves a batch of barcodes to product info. A missing
// barcode fails the whole batch with an error enumerating every one.
type BarcodeResolver interface {
	Resolve(ctx context.Context, barcodes []string) (map[string]appcatalog.ProductInfo, error)
}

// OrderService orchestrates the order write path and the read side
type OrderService struct {
	resolver      BarcodeResolver
	productRepo   catalog.ProductRepository
	inventoryRepo inventory.RecordRepository
	orderRepo     order.Repository
	txScope       TransactionScope
	idempotency   shared.IdempotencyStore
	logger        *zap.Logger
}

// NewOrderService creates a new OrderService. The idempotency store may be
// nil, in which case submitted idempotency keys are ignored.
func NewOrderService(
	resolver BarcodeResolver,
	productRepo catalog.ProductRepository,
	inventoryRepo inventory.RecordRepository,
	orderRepo order.Repository,
	txScope TransactionScope,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		resolver:      resolver,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		txScope:       txScope,
		idempotency:   idempotency,
		logger:        logger,
	}
}

// Create commits an order. All validation happens before any mutation; the
// stock decrements and the order insert then run in one transaction, so a
// failure at any point leaves no stock deducted and no dangling order.
//
// idempotencyKey is optional. When set, a retried submission with the same
// key is rejected instead of sold twice.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*OrderView, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	keyHeld := idempotencyKey != "" && s.idempotency != nil
	if keyHeld {
		fresh, err := s.idempotency.MarkProcessed(ctx, idempotencyKey, idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError(shared.CodeConflict, "Duplicate order submission")
		}
	}

	// A failure before the commit releases the key: the submission sold
	// nothing, so the same key must be allowed to retry (for instance after
	// restocking a short product). Once committed the key stays held.
	fail := func(err error) (*OrderView, error) {
		if keyHeld {
			if rerr := s.idempotency.Release(ctx, idempotencyKey); rerr != nil {
				s.logger.Warn("Failed to release idempotency key",
					zap.String("key", idempotencyKey), zap.Error(rerr))
			}
		}
		return nil, err
	}

	barcodes := make([]string, len(req.Items))
	for i, item := range req.Items {
		barcodes[i] = item.Barcode
	}

	resolved, err := s.resolver.Resolve(ctx, barcodes)
	if err != nil {
		return fail(err)
	}

	if err := checkExpectedTotals(req.Items); err != nil {
		return fail(err)
	}

	// Cumulative demand per product: the same barcode on two lines must be
	// checked and decremented jointly, not per line
	demand := make(map[uuid.UUID]int64)
	productOrder := make([]uuid.UUID, 0, len(resolved))
	barcodeByProduct := make(map[uuid.UUID]string, len(resolved))
	for _, item := range req.Items {
		info := resolved[item.Barcode]
		if _, seen := demand[info.ID]; !seen {
			productOrder = append(productOrder, info.ID)
			barcodeByProduct[info.ID] = info.Barcode
		}
		demand[info.ID] += item.Quantity
	}

	if err := s.precheckAvailability(ctx, productOrder, demand, barcodeByProduct); err != nil {
		return fail(err)
	}

	lines := make([]order.Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = order.Line{
			ProductID:    resolved[item.Barcode].ID,
			Quantity:     item.Quantity,
			SellingPrice: valueobject.NewMoneyINR(item.UnitPrice),
		}
	}

	newOrder, err := order.NewOrder(lines)
	if err != nil {
		return fail(err)
	}

	// Atomic commit phase: every decrement and the order insert stand or
	// fall together. A losing race against a concurrent order surfaces as
	// InsufficientStock and rolls everything back.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, productID := range productOrder {
			if err := repos.InventoryRepo().AdjustQuantity(ctx, productID, -demand[productID]); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainErrorWithDetails(shared.CodeInsufficientStock,
						"Insufficient stock", []string{barcodeByProduct[productID]})
				}
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, newOrder)
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("Order committed",
		zap.String("order_id", newOrder.ID.String()),
		zap.Int("items", len(newOrder.Items)),
		zap.String("total", newOrder.Total().StringFixed(2)),
	)

	// Read back the persisted order rather than echoing the input
	return s.GetByID(ctx, newOrder.ID)
}

// precheckAvailability verifies every product's cumulative demand against
// current stock before anything is mutated, and names every short barcode.
func (s *OrderService) precheckAvailability(ctx context.Context, productOrder []uuid.UUID, demand map[uuid.UUID]int64, barcodeByProduct map[uuid.UUID]string) error {
	records, err := s.inventoryRepo.FindByProductIDs(ctx, productOrder)
	if err != nil {
		return err
	}

	available := make(map[uuid.UUID]int64, len(records))
	for i := range records {
		available[records[i].ProductID] = records[i].Quantity
	}

	var short []string
	for _, productID := range productOrder {
		if available[productID] < demand[productID] {
			short = append(short, fmt.Sprintf("%s (requested %d, available %d)",
				barcodeByProduct[productID], demand[productID], available[productID]))
		}
	}
	if len(short) > 0 {
		sort.Strings(short)
		return shared.NewDomainErrorWithDetails(shared.CodeInsufficientStock, "Insufficient stock", short)
	}
	return nil
}

// GetByID returns the order view with product names and barcodes backfilled
// from the current catalog. Deleted products read as placeholders instead of
// failing the query.
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProductIdentities(ctx, []order.Order{*o})
	if err != nil {
		return nil, err
	}

	view := toOrderView(o, products)
	return &view, nil
}

// Search returns order views matching the filter, empty when nothing matches
func (s *OrderService) Search(ctx context.Context, filter SearchFilter) ([]OrderView, error) {
	orders, err := s.orderRepo.Search(ctx, order.SearchCriteria{
		StartTime: filter.StartTime,
		EndTime:   filter.EndTime,
		OrderID:   filter.OrderID,
	})
	if err != nil {
		return nil, err
	}

	products, err := s.loadProductIdentities(ctx, orders)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = toOrderView(&orders[i], products)
	}
	return views, nil
}

// loadProductIdentities batch-fetches catalog identities for every product
// referenced by the given orders
func (s *OrderService) loadProductIdentities(ctx context.Context, orders []order.Order) (map[uuid.UUID]productIdentity, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range orders {
		for j := range orders[i].Items {
			id := orders[i].Items[j].ProductID
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	identities := make(map[uuid.UUID]productIdentity, len(products))
	for i := range products {
		identities[products[i].ID] = productIdentity{
			Barcode: products[i].Barcode,
			Name:    products[i].Name,
		}
	}
	return identities, nil
}

// validateItems applies the pre-mutation input checks, collecting every
// violation into one structured report
func validateItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "Order must contain at least one item")
	}

	result := shared.NewValidationResult()
	for i, item := range items {
		if item.Barcode == "" {
			result.AddError(fmt.Sprintf("items[%d].barcode", i), "cannot be empty")
		}
		if item.Quantity <= 0 {
			result.AddError(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if !item.UnitPrice.IsPositive() {
			result.AddError(fmt.Sprintf("items[%d].unit_price", i), "must be positive")
		}
	}
	return result.AsError()
}

// checkExpectedTotals verifies the optional client-supplied line totals
// against unit price times quantity within the epsilon tolerance
func checkExpectedTotals(items []CreateOrderItem) error {
	result := shared.NewValidationResult()
	for i, item := range items {
		if item.ExpectedTotal == nil {
			continue
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		if lineTotal.Sub(*item.ExpectedTotal).Abs().GreaterThan(expectedTotalEpsilon) {
			result.AddError(fmt.Sprintf("items[%d].expected_total", i),
				fmt.Sprintf("does not match unit_price * quantity (computed %s)", lineTotal.StringFixed(2)))
		}
	}
	return result.AsError()
}
