package order

import (
	"fmt"

	"lms/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit adjacency table to ensure
// orders follow the correct business workflow.
//
// Canonical lifecycle:
//
//	Received -> Arrived -> Repacking -> Shipping -> Delivered
//	    -> Billing -> PaymentPending -> PaymentConfirmed -> Completed
//
// Cancelled is reachable from any non-terminal state. PaymentPending may move
// back to Billing when an invoice is reissued. Completed and Cancelled are
// terminal.
//
// A legacy presentation vocabulary (PENDING, PROCESSING, SHIPPED, IN_TRANSIT)
// exists for backward-compatible clients; it maps one-directionally onto the
// canonical set via LegacyAlias and StatusFromString and is never stored.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status: the order has been accepted into the system.
	Received

	// Arrived indicates the goods reached the origin warehouse.
	Arrived

	// Repacking indicates the goods are being repacked for international transit.
	Repacking

	// Shipping indicates the goods are in international transit.
	Shipping

	// Delivered indicates the goods reached the recipient.
	Delivered

	// Billing indicates invoicing is in progress.
	Billing

	// PaymentPending indicates an invoice has been issued and awaits payment.
	PaymentPending

	// PaymentConfirmed indicates payment has been received in full.
	PaymentConfirmed

	// Completed is the final state of a successful order.
	Completed

	// Cancelled is the terminal state of an abandoned order.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Received:         "RECEIVED",
		Arrived:          "ARRIVED",
		Repacking:        "REPACKING",
		Shipping:         "SHIPPING",
		Delivered:        "DELIVERED",
		Billing:          "BILLING",
		PaymentPending:   "PAYMENT_PENDING",
		PaymentConfirmed: "PAYMENT_CONFIRMED",
		Completed:        "COMPLETED",
		Cancelled:        "CANCELLED",
	}
}

// getTransitions returns the adjacency table of the canonical lifecycle.
// Cancellation edges are handled separately in CanTransitionTo so that every
// non-terminal state can reach Cancelled without repeating it here.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Received:         {Arrived},
		Arrived:          {Repacking},
		Repacking:        {Shipping},
		Shipping:         {Delivered},
		Delivered:        {Billing, Completed},
		Billing:          {PaymentPending, Completed},
		PaymentPending:   {PaymentConfirmed, Billing},
		PaymentConfirmed: {Completed},
		Completed:        {},
		Cancelled:        {},
	}
}

// StatusFromString parses a status from its canonical name. Legacy
// presentation aliases are accepted on input and mapped onto the canonical
// set: PENDING -> RECEIVED, PROCESSING -> REPACKING, SHIPPED and
// IN_TRANSIT -> SHIPPING.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}

	switch s {
	case "PENDING":
		return Received, nil
	case "PROCESSING":
		return Repacking, nil
	case "SHIPPED", "IN_TRANSIT":
		return Shipping, nil
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a known status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical uppercase name of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the adjacency table allows moving from the
// current status to next. Cancelled is reachable from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}

	if next == Cancelled {
		return !s.IsTerminal()
	}

	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition to next.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (Unknown, *errs.InvalidTransitionError) naming both states otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), next.String())
	}

	return next, nil
}

// IsMilestone reports whether the status is a customer-visible checkpoint
// that should produce a tracking timeline event. Internal stages such as
// Repacking and the billing states are audit-only.
func (s Status) IsMilestone() bool {
	switch s {
	case Received, Arrived, Shipping, Delivered, Completed, Cancelled:
		return true
	default:
		return false
	}
}

// Stage returns a normalized progress ordinal for client progress bars:
// 0 = received, 1 = arrived, 2 = repacking, 3 = shipping, 4 = delivered or
// any later state, -1 = cancelled.
func (s Status) Stage() int {
	switch s {
	case Received:
		return 0
	case Arrived:
		return 1
	case Repacking:
		return 2
	case Shipping:
		return 3
	case Delivered, Billing, PaymentPending, PaymentConfirmed, Completed:
		return 4
	case Cancelled:
		return -1
	default:
		return 0
	}
}

// LegacyAlias returns the presentation-only status name used by
// backward-compatible clients. The mapping is one-directional; legacy names
// are never stored.
func (s Status) LegacyAlias() string {
	switch s {
	case Received:
		return "PENDING"
	case Arrived, Repacking:
		return "PROCESSING"
	case Shipping:
		return "IN_TRANSIT"
	case Delivered, Billing, PaymentPending, PaymentConfirmed, Completed:
		return "DELIVERED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "PENDING"
	}
}
