package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/partner"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcodes(ctx context.Context, barcodes []string) ([]catalog.Product, error) {
	args := m.Called(ctx, barcodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByName(ctx context.Context, name string) (*partner.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecordRepository is a mock implementation of inventory.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.Record, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Record, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) EnsureExists(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockRecordRepository) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int64) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

func newMockInventoryRepo() *MockRecordRepository {
	return new(MockRecordRepository)
}

func moneyFromInt(v int64) valueobject.Money {
	return valueobject.NewMoneyINR(decimal.NewFromInt(v))
}

func newTestClient(t *testing.T, name string) *partner.Client {
	client, err := partner.NewClient(name)
	require.NoError(t, err)
	return client
}

func newTestProduct(t *testing.T, barcode, name string, mrp int64) *catalog.Product {
	product, err := catalog.NewProduct(barcode, uuid.New(), name, moneyFromInt(mrp))
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product and provisions zero stock", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		clientRepo := new(MockClientRepository)
		recordRepo := newMockInventoryRepo()
		svc := NewProductService(productRepo, clientRepo, recordRepo)

		client := newTestClient(t, "Acme Foods")

		productRepo.On("FindByBarcode", ctx, "8901030865278").Return(nil, shared.ErrNotFound)
		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		recordRepo.On("EnsureExists", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Barcode:  "8901030865278",
			ClientID: client.ID,
			Name:     "Green Tea 25 Bags",
			MRP:      decimal.NewFromInt(180),
		})

		require.NoError(t, err)
		assert.Equal(t, "8901030865278", resp.Barcode)
		assert.True(t, decimal.NewFromInt(180).Equal(resp.MRP))
		productRepo.AssertExpectations(t)
		recordRepo.AssertExpectations(t)
	})

	t.Run("duplicate barcode is a conflict", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		clientRepo := new(MockClientRepository)
		recordRepo := newMockInventoryRepo()
		svc := NewProductService(productRepo, clientRepo, recordRepo)

		existing := newTestProduct(t, "123", "Existing", 50)
		productRepo.On("FindByBarcode", ctx, "123").Return(existing, nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Barcode:  "123",
			ClientID: uuid.New(),
			Name:     "Another",
			MRP:      decimal.NewFromInt(60),
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
		recordRepo.AssertNotCalled(t, "EnsureExists", mock.Anything, mock.Anything)
	})

	t.Run("unknown client is not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		clientRepo := new(MockClientRepository)
		recordRepo := newMockInventoryRepo()
		svc := NewProductService(productRepo, clientRepo, recordRepo)

		clientID := uuid.New()
		productRepo.On("FindByBarcode", ctx, "456").Return(nil, shared.ErrNotFound)
		clientRepo.On("FindByID", ctx, clientID).Return(nil, shared.ErrNotFound)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Barcode:  "456",
			ClientID: clientID,
			Name:     "Orphan",
			MRP:      decimal.NewFromInt(10),
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})
}

func TestProductResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves distinct barcodes in one batch", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		resolver := NewProductResolver(productRepo)

		p1 := newTestProduct(t, "111", "One", 10)
		p2 := newTestProduct(t, "222", "Two", 20)

		productRepo.On("FindByBarcodes", ctx, []string{"111", "222"}).
			Return([]catalog.Product{*p1, *p2}, nil)

		resolved, err := resolver.Resolve(ctx, []string{"111", "222", "111"})

		require.NoError(t, err)
		assert.Len(t, resolved, 2)
		assert.Equal(t, p1.ID, resolved["111"].ID)
		assert.Equal(t, "Two", resolved["222"].Name)
		productRepo.AssertExpectations(t)
	})

	t.Run("enumerates every missing barcode", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		resolver := NewProductResolver(productRepo)

		p1 := newTestProduct(t, "111", "One", 10)

		productRepo.On("FindByBarcodes", ctx, []string{"111", "aaa", "zzz"}).
			Return([]catalog.Product{*p1}, nil)

		resolved, err := resolver.Resolve(ctx, []string{"111", "aaa", "zzz"})

		assert.Nil(t, resolved)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
		assert.Equal(t, []string{"aaa", "zzz"}, domainErr.Details)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		resolver := NewProductResolver(new(MockProductRepository))

		_, err := resolver.Resolve(ctx, nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}

func TestProductService_ImportTSV(t *testing.T) {
	ctx := context.Background()

	clientID := uuid.New()
	header := "barcode\tclient_id\tname\tmrp\timage_url\n"

	t.Run("imports valid rows", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		clientRepo := new(MockClientRepository)
		recordRepo := newMockInventoryRepo()
		svc := NewProductService(productRepo, clientRepo, recordRepo)

		tsv := header +
			"111\t" + clientID.String() + "\tFirst\t99.50\t\n" +
			"222\t" + clientID.String() + "\tSecond\t10\thttps://img.example/2.png\n"

		productRepo.On("FindByBarcodes", ctx, []string{"111", "222"}).
			Return([]catalog.Product{}, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil).Twice()
		recordRepo.On("EnsureExists", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil).Twice()

		result, err := svc.ImportTSV(ctx, strings.NewReader(tsv))

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.Imported)
		assert.Empty(t, result.Errors)
		productRepo.AssertExpectations(t)
	})

	t.Run("collects every row error and imports nothing", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		clientRepo := new(MockClientRepository)
		recordRepo := newMockInventoryRepo()
		svc := NewProductService(productRepo, clientRepo, recordRepo)

		existing := newTestProduct(t, "dup", "Taken", 5)

		tsv := header +
			"\t" + clientID.String() + "\tNoBarcode\t5\t\n" + // empty barcode
			"111\tnot-a-uuid\tBadClient\t5\t\n" + // bad client id
			"222\t" + clientID.String() + "\tBadPrice\t-1\t\n" + // negative mrp
			"dup\t" + clientID.String() + "\tTaken\t5\t\n" + // already exists
			"333\t" + clientID.String() + "\tValid\t5\t\n"

		productRepo.On("FindByBarcodes", ctx, []string{"dup", "333"}).
			Return([]catalog.Product{*existing}, nil)

		result, err := svc.ImportTSV(ctx, strings.NewReader(tsv))

		require.Error(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 5, result.TotalRows)
		assert.Equal(t, 0, result.Imported)
		assert.Len(t, result.Errors, 4)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects wrong header", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepository), new(MockClientRepository), newMockInventoryRepo())

		_, err := svc.ImportTSV(ctx, strings.NewReader("foo\tbar\n111\tx\n"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})
}
