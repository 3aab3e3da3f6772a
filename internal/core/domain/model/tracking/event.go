// Package tracking implements the append-only TrackingEvent records that
// feed the customer-facing timeline. Events reference their order by
// identifier only and are never owned by the Order aggregate.
package tracking

import (
	"errors"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through its factory methods.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is one customer-visible checkpoint in an order's timeline. The
// status code comes from a larger customer-facing vocabulary than the
// internal order status; milestone events are highlighted by clients.
// Ordering key is the event time, with ties broken by insertion order.
type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	statusCode  string
	description string
	location    string
	milestone   bool
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates an immutable tracking event.
func NewEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	statusCode string,
	description string,
	location string,
	milestone bool,
	occurredAt time.Time,
) (*Event, error) {
	e := &Event{
		description: description,
		location:    location,
		milestone:   milestone,
		occurredAt:  occurredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setStatusCode(statusCode),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEvent reconstructs an Event from persistent storage.
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	statusCode string,
	description string,
	location string,
	milestone bool,
	occurredAt time.Time,
) (*Event, error) {
	return NewEvent(id, orderID, statusCode, description, location, milestone, occurredAt)
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the tracked order.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// StatusCode returns the customer-facing status code of the checkpoint.
func (e *Event) StatusCode() string {
	return e.statusCode
}

// Description returns the human-readable checkpoint description.
func (e *Event) Description() string {
	return e.description
}

// Location returns where the checkpoint happened, possibly empty.
func (e *Event) Location() string {
	return e.location
}

// Milestone reports whether clients should highlight the checkpoint.
func (e *Event) Milestone() bool {
	return e.milestone
}

// OccurredAt returns when the checkpoint happened.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Event) setStatusCode(statusCode string) error {
	if statusCode == "" {
		return errs.NewValueIsRequiredError("statusCode")
	}
	e.statusCode = statusCode
	return nil
}
