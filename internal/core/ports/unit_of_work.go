package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// InventoryRepository returns an InventoryRepository bound to the current transaction.
	InventoryRepository() InventoryRepository

	// WarehouseRepository returns a WarehouseRepository bound to the current transaction.
	WarehouseRepository() WarehouseRepository

	// ScanEventRepository returns a ScanEventRepository bound to the current transaction.
	ScanEventRepository() ScanEventRepository

	// InvoiceRepository returns an InvoiceRepository bound to the current transaction.
	InvoiceRepository() InvoiceRepository

	// TrackingEventRepository returns a TrackingEventRepository bound to the current transaction.
	TrackingEventRepository() TrackingEventRepository
}
