package commands

import (
	"errors"

	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrUpdateOrderBoxesCommandIsNotConstructed = errors.New(
		"UpdateOrderBoxesCommand must be created via NewUpdateOrderBoxesCommand constructor",
	)
)

// BoxMeasurement carries re-measured dimensions for one existing box.
type BoxMeasurement struct {
	LabelCode string
	WidthCm   float64
	HeightCm  float64
	DepthCm   float64
}

// UpdateOrderBoxesCommand represents a request to correct the measured
// dimensions of an order's boxes, for example after a repack. Volumes,
// the shipping method, compliance flags and open invoices are recomputed
// from the new measurements.
type UpdateOrderBoxesCommand struct { //nolint:recvcheck //using for validation
	orderNumber  string
	measurements []BoxMeasurement
	actor        string

	guard guard.ConstructorGuard
}

// NewUpdateOrderBoxesCommand creates a command to update box dimensions.
func NewUpdateOrderBoxesCommand(
	orderNumber string,
	measurements []BoxMeasurement,
	actor string,
) (UpdateOrderBoxesCommand, error) {
	boxesCommand := UpdateOrderBoxesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		boxesCommand.setOrderNumber(orderNumber),
		boxesCommand.setMeasurements(measurements),
		boxesCommand.setActor(actor),
	); err != nil {
		return UpdateOrderBoxesCommand{}, err
	}

	return boxesCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderBoxesCommandIsNotConstructed if validation fails.
func (c UpdateOrderBoxesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderBoxesCommandIsNotConstructed)
}

// OrderNumber returns the order whose boxes are being re-measured.
func (c UpdateOrderBoxesCommand) OrderNumber() string {
	return c.orderNumber
}

// Measurements returns the new per-box measurements.
func (c UpdateOrderBoxesCommand) Measurements() []BoxMeasurement {
	return c.measurements
}

// Actor returns the identity of the measuring operator.
func (c UpdateOrderBoxesCommand) Actor() string {
	return c.actor
}

func (c *UpdateOrderBoxesCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *UpdateOrderBoxesCommand) setMeasurements(measurements []BoxMeasurement) error {
	if len(measurements) == 0 {
		return errs.NewValueIsRequiredError("boxes")
	}

	for _, measurement := range measurements {
		if measurement.LabelCode == "" {
			return errs.NewValueIsRequiredError("labelCode")
		}
	}

	c.measurements = measurements
	return nil
}

func (c *UpdateOrderBoxesCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
