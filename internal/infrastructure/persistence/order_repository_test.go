package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, o)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Search(t *testing.T) {
	t.Run("time range is inclusive on both ends", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE created_at >= \$1 AND created_at <= \$2`).
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "invoice_path"}))

		orders, err := repo.Search(context.Background(), order.SearchCriteria{
			StartTime: &start,
			EndTime:   &end,
		})

		assert.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_UpdateInvoicePath(t *testing.T) {
	t.Run("writes the path when none is set", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := &order.Order{}
		o.ID = uuid.New()
		o.InvoicePath = "invoices/" + o.ID.String() + ".pdf"
		o.UpdatedAt = time.Now()

		mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$3 AND \(invoice_path IS NULL OR invoice_path = ''\)`).
			WithArgs(o.InvoicePath, sqlmock.AnyArg(), o.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateInvoicePath(context.Background(), o)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second attachment is rejected with a conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := &order.Order{}
		o.ID = uuid.New()
		o.InvoicePath = "invoices/regenerated.pdf"
		o.UpdatedAt = time.Now()

		mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$3`).
			WithArgs(o.InvoicePath, sqlmock.AnyArg(), o.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"id", "version", "invoice_path"}).
			AddRow(o.ID, 2, "invoices/original.pdf")
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(o.ID, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(o.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "selling_price"}))

		err := repo.UpdateInvoicePath(context.Background(), o)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
