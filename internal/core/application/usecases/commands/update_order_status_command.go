package commands

import (
	"errors"

	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Administrators may request corrective moves that bypass
// the forward-only adjacency rules.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	newStatus   order.Status
	reason      string
	actor       string
	corrective  bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to transition an order.
// The target status must be a known status; the corrective flag marks an
// administrator correction that may move backward through the lifecycle.
func NewUpdateOrderStatusCommand(
	orderNumber string,
	newStatus order.Status,
	reason string,
	actor string,
	corrective bool,
) (UpdateOrderStatusCommand, error) {
	statusCommand := UpdateOrderStatusCommand{
		reason:     reason,
		corrective: corrective,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderNumber(orderNumber),
		statusCommand.setNewStatus(newStatus),
		statusCommand.setActor(actor),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderNumber returns the business order number to transition.
func (c UpdateOrderStatusCommand) OrderNumber() string {
	return c.orderNumber
}

// NewStatus returns the requested target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Reason returns the optional human-readable reason for the transition.
func (c UpdateOrderStatusCommand) Reason() string {
	return c.reason
}

// Actor returns the identity of the operator requesting the transition.
func (c UpdateOrderStatusCommand) Actor() string {
	return c.actor
}

// Corrective reports whether this is an administrator correction.
func (c UpdateOrderStatusCommand) Corrective() bool {
	return c.corrective
}

func (c *UpdateOrderStatusCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
