package ports

import (
	"context"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for inventory unit aggregates.
type InventoryRepository interface {
	// Add persists a new inventory unit. The inventory code and label code
	// must not already exist.
	Add(ctx context.Context, unit *inventory.Unit) error

	// Update persists changes to an existing unit using optimistic locking:
	// the stored version must match the aggregate's version, which is then
	// incremented. A lost race returns a concurrency conflict error.
	Update(ctx context.Context, unit *inventory.Unit) error

	// Get retrieves an inventory unit by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Unit, error)

	// GetByLabelCode retrieves the inventory unit carrying the given box label.
	GetByLabelCode(ctx context.Context, labelCode string) (*inventory.Unit, error)

	// GetAllByOrder retrieves every inventory unit belonging to an order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*inventory.Unit, error)
}

// WarehouseRepository defines the persistence contract for warehouses,
// including the running occupied-volume counter used for capacity checks.
type WarehouseRepository interface {
	// Add persists a new warehouse. The warehouse code must not already exist.
	Add(ctx context.Context, warehouse *inventory.Warehouse) error

	// Update persists changes to an existing warehouse, including its
	// occupied volume.
	Update(ctx context.Context, warehouse *inventory.Warehouse) error

	// Get retrieves a warehouse by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Warehouse, error)
}

// ScanEventRepository defines the persistence contract for the append-only
// scan event log.
type ScanEventRepository interface {
	// Add appends a scan event to the log.
	Add(ctx context.Context, event *inventory.ScanEvent) error

	// Exists reports whether a scan of the given type has already been
	// recorded for the label. Used for duplicate detection on
	// non-repeatable scan types.
	Exists(ctx context.Context, labelCode string, scanType inventory.ScanType) (bool, error)

	// GetAllByLabel retrieves the scan history of a label, oldest first.
	GetAllByLabel(ctx context.Context, labelCode string) ([]*inventory.ScanEvent, error)
}
