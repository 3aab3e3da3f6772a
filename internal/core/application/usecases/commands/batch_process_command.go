package commands

import (
	"errors"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrBatchProcessCommandIsNotConstructed = errors.New(
		"BatchProcessCommand must be created via NewBatchProcessCommand constructor",
	)
)

// BatchProcessCommand represents the same scan action applied to many
// labels in one request, for example an inbound pallet of boxes.
type BatchProcessCommand struct { //nolint:recvcheck //using for validation
	action      inventory.ScanType
	labelCodes  []string
	warehouseID *kernel.UUID
	location    string
	actor       string

	guard guard.ConstructorGuard
}

// NewBatchProcessCommand creates a command for batch scan processing.
func NewBatchProcessCommand(
	action inventory.ScanType,
	labelCodes []string,
	warehouseID *kernel.UUID,
	location string,
	actor string,
) (BatchProcessCommand, error) {
	batchCommand := BatchProcessCommand{
		warehouseID: warehouseID,
		location:    location,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		batchCommand.setAction(action),
		batchCommand.setLabelCodes(labelCodes),
		batchCommand.setActor(actor),
	); err != nil {
		return BatchProcessCommand{}, err
	}

	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBatchProcessCommandIsNotConstructed if validation fails.
func (c BatchProcessCommand) Validate() error {
	return c.guard.Validate(ErrBatchProcessCommandIsNotConstructed)
}

// Action returns the scan action to apply to every label.
func (c BatchProcessCommand) Action() inventory.ScanType {
	return c.action
}

// LabelCodes returns the labels to process.
func (c BatchProcessCommand) LabelCodes() []string {
	return c.labelCodes
}

// WarehouseID returns the target warehouse, set for inbound batches.
func (c BatchProcessCommand) WarehouseID() *kernel.UUID {
	return c.warehouseID
}

// Location returns the physical location shared by the batch.
func (c BatchProcessCommand) Location() string {
	return c.location
}

// Actor returns the identity of the scanning operator.
func (c BatchProcessCommand) Actor() string {
	return c.actor
}

func (c *BatchProcessCommand) setAction(action inventory.ScanType) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *BatchProcessCommand) setLabelCodes(labelCodes []string) error {
	if len(labelCodes) == 0 {
		return errs.NewValueIsRequiredError("labelCodes")
	}

	c.labelCodes = labelCodes
	return nil
}

func (c *BatchProcessCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
