// Package ports defines repository interfaces for the shipment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their owned boxes, items and audit history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and its order number must not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including its boxes, items and any appended audit entries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with boxes, items and audit history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order aggregate by its business order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// NextOrderNumber allocates the next unique order number for the given
	// year, in the form ORD-<year>-<zero-padded sequence>.
	NextOrderNumber(ctx context.Context, year int) (string, error)
}
