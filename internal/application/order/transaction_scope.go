package order

import (
	"context"

	"github.com/slippery-operator/pos-sub001/internal/domain/inventory"
	"github.com/slippery-operator/pos-sub001/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories an
// order commit touches. Everything executed inside Execute shares one
// database transaction and commits or rolls back as a unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order and inventory
// repositories scoped to the current transaction.
type TransactionalRepositories interface {
	OrderRepo() order.Repository
	InventoryRepo() inventory.RecordRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	orderRepo     order.Repository
	inventoryRepo inventory.RecordRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(orderRepo order.Repository, inventoryRepo inventory.RecordRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// InventoryRepo returns the inventory record repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.RecordRepository {
	return s.inventoryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
