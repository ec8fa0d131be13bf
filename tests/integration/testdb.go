// Package integration provides integration testing utilities for the POS
// backend. Tests run against a real SQLite database file so the GORM
// repositories, transactions and conditional updates are exercised for real.
package integration

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
	"github.com/slippery-operator/pos-sub001/internal/domain/partner"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents a test database connection
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	t     *testing.T
}

// NewTestDB creates a fresh SQLite database for a test. Each test gets its
// own database file under t.TempDir(), providing complete isolation, and the
// file is removed with the temp dir on cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "pos_test.db") + "?_busy_timeout=5000"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	// SQLite allows a single writer; a pool of one serializes the
	// concurrency tests at the connection instead of failing with
	// "database is locked".
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&partner.Client{},
		&catalog.Product{},
		&inventory.Record{},
		&order.Order{},
		&order.Item{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	testDB := &TestDB{
		DB:    db,
		SqlDB: sqlDB,
		t:     t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
}

// StockQuantity reads the current stock level for a product straight from
// the database, bypassing the API, for ledger assertions.
func (tdb *TestDB) StockQuantity(productID string) int64 {
	tdb.t.Helper()

	var quantity int64
	err := tdb.DB.Raw(
		"SELECT quantity FROM inventory_records WHERE product_id = ?", productID,
	).Scan(&quantity).Error
	require.NoError(tdb.t, err, "Failed to read stock quantity")
	return quantity
}

// OrderCount returns the number of committed orders
func (tdb *TestDB) OrderCount() int64 {
	tdb.t.Helper()

	var count int64
	err := tdb.DB.Model(&order.Order{}).Count(&count).Error
	require.NoError(tdb.t, err, "Failed to count orders")
	return count
}
