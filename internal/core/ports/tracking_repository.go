package ports

import (
	"context"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/tracking"
)

// TrackingEventRepository defines the persistence contract for the
// append-only customer-facing tracking event log.
type TrackingEventRepository interface {
	// Add appends a tracking event to the log.
	Add(ctx context.Context, event *tracking.Event) error

	// GetAllByOrder retrieves every tracking event of an order in
	// insertion order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*tracking.Event, error)
}
