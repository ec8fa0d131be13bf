package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockRecordRepository creates a GormRecordRepository with a mocked SQL connection
func newMockRecordRepository(t *testing.T) (*GormRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormRecordRepository(gormDB), mock, mockDB
}

func TestGormRecordRepository_FindByProductID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "product_id", "quantity"}).
			AddRow(recordID, 1, productID, int64(42))

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		record, err := repo.FindByProductID(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, productID, record.ProductID)
		assert.Equal(t, int64(42), record.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing record", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByProductID(context.Background(), productID)

		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRecordRepository_FindByProductIDs(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		repo, _, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		records, err := repo.FindByProductIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("fetches records in one query", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		p1 := uuid.New()
		p2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "product_id", "quantity"}).
			AddRow(uuid.New(), 1, p1, int64(5)).
			AddRow(uuid.New(), 1, p2, int64(0))

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id IN`).
			WillReturnRows(rows)

		records, err := repo.FindByProductIDs(context.Background(), []uuid.UUID{p1, p2})

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRecordRepository_EnsureExists(t *testing.T) {
	t.Run("creates zero quantity record idempotently", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`INSERT INTO "inventory_records" .* ON CONFLICT \("product_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.EnsureExists(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects nil product id", func(t *testing.T) {
		repo, _, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		err := repo.EnsureExists(context.Background(), uuid.Nil)

		assert.Error(t, err)
	})
}

func TestGormRecordRepository_AdjustQuantity(t *testing.T) {
	t.Run("increment updates unconditionally", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET .* WHERE product_id = \$2`).
			WithArgs(int64(10), productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustQuantity(context.Background(), productID, 10)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("decrement carries sufficiency guard", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET .* WHERE product_id = \$2 AND quantity >= \$3`).
			WithArgs(int64(-3), productID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustQuantity(context.Background(), productID, -3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guarded decrement with insufficient stock fails cleanly", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET .* WHERE product_id = \$2 AND quantity >= \$3`).
			WithArgs(int64(-100), productID, int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"id", "version", "product_id", "quantity"}).
			AddRow(uuid.New(), 1, productID, int64(7))
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		err := repo.AdjustQuantity(context.Background(), productID, -100)

		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("decrement against missing record reports not found", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET .* WHERE product_id = \$2 AND quantity >= \$3`).
			WithArgs(int64(-1), productID, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		err := repo.AdjustQuantity(context.Background(), productID, -1)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero delta is a no-op", func(t *testing.T) {
		repo, _, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		err := repo.AdjustQuantity(context.Background(), uuid.New(), 0)

		assert.NoError(t, err)
	})
}
