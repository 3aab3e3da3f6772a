package commands

import (
	"errors"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// BoxInput carries the measured dimensions and weight of one incoming box.
type BoxInput struct {
	WidthCm  float64
	HeightCm float64
	DepthCm  float64
	WeightKg float64
}

// ItemInput carries the declared contents of a shipment.
type ItemInput struct {
	Description string
	Quantity    int
	UnitValue   float64
	Currency    string
	HSCode      string
}

// CreateOrderCommand represents a request to register a new cross-border
// shipment order with its boxes measured at intake and declared items.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	memberCode      string
	recipient       order.Recipient
	requestedMethod order.Method
	boxes           []BoxInput
	items           []ItemInput
	actor           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipment order.
// Validates the order ID, recipient, requested shipping method and actor;
// at least one box is required. The member code may be empty, which is
// recorded as a compliance flag rather than rejected.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	memberCode string,
	recipient order.Recipient,
	requestedMethod order.Method,
	boxes []BoxInput,
	items []ItemInput,
	actor string,
) (CreateOrderCommand, error) {
	createCommand := CreateOrderCommand{
		memberCode: memberCode,
		items:      items,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		createCommand.setOrderID(orderID),
		createCommand.setRecipient(recipient),
		createCommand.setRequestedMethod(requestedMethod),
		createCommand.setBoxes(boxes),
		createCommand.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return createCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MemberCode returns the customer's membership code, possibly empty.
func (c CreateOrderCommand) MemberCode() string {
	return c.memberCode
}

// Recipient returns the destination recipient details.
func (c CreateOrderCommand) Recipient() order.Recipient {
	return c.recipient
}

// RequestedMethod returns the shipping method requested by the customer.
// Business rules may override it.
func (c CreateOrderCommand) RequestedMethod() order.Method {
	return c.requestedMethod
}

// Boxes returns the measured boxes of the shipment.
func (c CreateOrderCommand) Boxes() []BoxInput {
	return c.boxes
}

// Items returns the declared items of the shipment.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}

// Actor returns the identity of the operator registering the order.
func (c CreateOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRecipient(recipient order.Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}

	c.recipient = recipient
	return nil
}

func (c *CreateOrderCommand) setRequestedMethod(requestedMethod order.Method) error {
	if err := requestedMethod.Validate(); err != nil {
		return err
	}

	c.requestedMethod = requestedMethod
	return nil
}

func (c *CreateOrderCommand) setBoxes(boxes []BoxInput) error {
	if len(boxes) == 0 {
		return errs.NewValueIsRequiredError("boxes")
	}

	c.boxes = boxes
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
