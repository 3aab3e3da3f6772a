package commands

import (
	"errors"
	"fmt"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrProcessScanCommandIsNotConstructed = errors.New(
		"ProcessScanCommand must be created via NewProcessScanCommand constructor",
	)
)

// ProcessScanCommand represents a single physical scan performed by a
// warehouse operator against a box label.
type ProcessScanCommand struct { //nolint:recvcheck //using for validation
	labelCode   string
	scanType    inventory.ScanType
	warehouseID *kernel.UUID
	location    string
	note        string
	photoURLs   []string
	actor       string

	guard guard.ConstructorGuard
}

// NewProcessScanCommand creates a command to process a warehouse scan.
// Inbound scans require a target warehouse; mixbox scans are rejected here
// because consolidation is a dedicated operation with its own inputs.
func NewProcessScanCommand(
	labelCode string,
	scanType inventory.ScanType,
	warehouseID *kernel.UUID,
	location string,
	note string,
	photoURLs []string,
	actor string,
) (ProcessScanCommand, error) {
	scanCommand := ProcessScanCommand{
		location:  location,
		note:      note,
		photoURLs: photoURLs,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		scanCommand.setLabelCode(labelCode),
		scanCommand.setScanType(scanType),
		scanCommand.setWarehouseID(scanType, warehouseID),
		scanCommand.setActor(actor),
	); err != nil {
		return ProcessScanCommand{}, err
	}

	return scanCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessScanCommandIsNotConstructed if validation fails.
func (c ProcessScanCommand) Validate() error {
	return c.guard.Validate(ErrProcessScanCommandIsNotConstructed)
}

// LabelCode returns the scanned box label.
func (c ProcessScanCommand) LabelCode() string {
	return c.labelCode
}

// ScanType returns the scan action being performed.
func (c ProcessScanCommand) ScanType() inventory.ScanType {
	return c.scanType
}

// WarehouseID returns the target warehouse, set for inbound scans.
func (c ProcessScanCommand) WarehouseID() *kernel.UUID {
	return c.warehouseID
}

// Location returns the physical storage location noted by the operator.
func (c ProcessScanCommand) Location() string {
	return c.location
}

// Note returns the operator's free-form note.
func (c ProcessScanCommand) Note() string {
	return c.note
}

// PhotoURLs returns references to photos taken during the scan.
func (c ProcessScanCommand) PhotoURLs() []string {
	return c.photoURLs
}

// Actor returns the identity of the scanning operator.
func (c ProcessScanCommand) Actor() string {
	return c.actor
}

func (c *ProcessScanCommand) setLabelCode(labelCode string) error {
	if labelCode == "" {
		return errs.NewValueIsRequiredError("labelCode")
	}

	c.labelCode = labelCode
	return nil
}

func (c *ProcessScanCommand) setScanType(scanType inventory.ScanType) error {
	if err := scanType.Validate(); err != nil {
		return err
	}

	if scanType == inventory.ScanMixbox {
		return errs.NewValueIsInvalidErrorWithCause("scanType",
			fmt.Errorf("mixbox consolidation is a separate operation"))
	}

	c.scanType = scanType
	return nil
}

func (c *ProcessScanCommand) setWarehouseID(scanType inventory.ScanType, warehouseID *kernel.UUID) error {
	if warehouseID == nil {
		if scanType == inventory.ScanInbound {
			return errs.NewValueIsRequiredError("warehouseId")
		}
		return nil
	}

	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *ProcessScanCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
