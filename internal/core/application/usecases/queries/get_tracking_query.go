// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain repositories and read optimized models directly
// from the database.
package queries

import (
	"errors"
	"time"

	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrGetTrackingQueryIsNotConstructed = errors.New(
		"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
	)
)

// GetTrackingQuery retrieves the customer-facing timeline of one order.
// The timeline merges the order's audit history with its tracking events;
// it backs the public tracking endpoint and requires no authentication.
type GetTrackingQuery struct { //nolint:recvcheck //using for validation
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for the given order number.
func NewGetTrackingQuery(orderNumber string) (GetTrackingQuery, error) {
	if orderNumber == "" {
		return GetTrackingQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return GetTrackingQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingQueryIsNotConstructed if validation fails.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// OrderNumber returns the order whose timeline is requested.
func (q GetTrackingQuery) OrderNumber() string {
	return q.orderNumber
}

// TimelineEntry is one row of the customer-facing timeline. Synthetic
// entries are derived from the order's current status when no concrete
// event was recorded for a stage the order has demonstrably passed.
type TimelineEntry struct {
	StatusCode  string
	Description string
	Location    string
	Milestone   bool
	Synthetic   bool
	OccurredAt  time.Time
}

// GetTrackingQueryResponse is the public tracking read model. LegacyStatus
// carries the presentation alias used by backward-compatible clients; Stage
// is the normalized progress ordinal for progress bars.
type GetTrackingQueryResponse struct {
	OrderNumber   string
	Status        string
	LegacyStatus  string
	Stage         int
	LastUpdatedAt time.Time
	Entries       []TimelineEntry
}
