package inventory

import (
	"errors"
	"fmt"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrWarehouseIsNotConstructed is returned when a Warehouse instance was not
// created through its factory methods.
var ErrWarehouseIsNotConstructed = errors.New(
	"Warehouse must be created via NewWarehouse or RestoreWarehouse constructor")

// Warehouse is a capacity-bounded physical facility. Occupied volume is
// tracked in cubic meters and adjusted inside the same transaction as the
// unit state change that caused it, so capacity can never be double-booked.
type Warehouse struct {
	id             kernel.UUID
	code           string
	name           string
	maxCapacityCBM float64
	occupiedCBM    float64

	guard guard.ConstructorGuard
}

// NewWarehouse creates an empty Warehouse with the given capacity bound.
func NewWarehouse(id kernel.UUID, code, name string, maxCapacityCBM float64) (*Warehouse, error) {
	w := &Warehouse{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setCode(code),
		w.setName(name),
		w.setMaxCapacity(maxCapacityCBM),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWarehouse reconstructs a Warehouse from persistent storage.
func RestoreWarehouse(
	id kernel.UUID,
	code, name string,
	maxCapacityCBM, occupiedCBM float64,
) (*Warehouse, error) {
	w, err := NewWarehouse(id, code, name, maxCapacityCBM)
	if err != nil {
		return nil, err
	}

	if occupiedCBM < 0 || occupiedCBM > maxCapacityCBM {
		return nil, errs.NewValueIsOutOfRangeError("occupiedCBM", occupiedCBM, 0, maxCapacityCBM)
	}

	w.occupiedCBM = occupiedCBM
	return w, nil
}

// Validate ensures the Warehouse instance was properly constructed.
func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

// ID returns the warehouse's unique identifier.
func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

// Code returns the short warehouse code, e.g. "BKK-01".
func (w *Warehouse) Code() string {
	return w.code
}

// Name returns the human-readable warehouse name.
func (w *Warehouse) Name() string {
	return w.name
}

// MaxCapacityCBM returns the capacity bound in cubic meters.
func (w *Warehouse) MaxCapacityCBM() float64 {
	return w.maxCapacityCBM
}

// OccupiedCBM returns the currently occupied volume in cubic meters.
func (w *Warehouse) OccupiedCBM() float64 {
	return w.occupiedCBM
}

// AvailableCBM returns the remaining free volume in cubic meters.
func (w *Warehouse) AvailableCBM() float64 {
	return kernel.RoundHalfUp(w.maxCapacityCBM-w.occupiedCBM, kernel.CBMPrecision)
}

// Accept reserves cbm cubic meters for an inbound unit. Returns a
// CapacityExceededError when the reservation would push the warehouse past
// its capacity bound.
func (w *Warehouse) Accept(cbm float64) error {
	if cbm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"cbm", fmt.Errorf("%g is not greater than 0", cbm))
	}

	if w.occupiedCBM+cbm > w.maxCapacityCBM {
		return errs.NewCapacityExceededError(w.code, w.maxCapacityCBM, w.occupiedCBM, cbm)
	}

	w.occupiedCBM = kernel.RoundHalfUp(w.occupiedCBM+cbm, kernel.CBMPrecision)
	return nil
}

// Free releases cbm cubic meters after an outbound dispatch or a
// consolidation shrank the stored volume. Freeing below zero clamps to zero.
func (w *Warehouse) Free(cbm float64) error {
	if cbm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"cbm", fmt.Errorf("%g is not greater than 0", cbm))
	}

	w.occupiedCBM = kernel.RoundHalfUp(w.occupiedCBM-cbm, kernel.CBMPrecision)
	if w.occupiedCBM < 0 {
		w.occupiedCBM = 0
	}
	return nil
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("warehouseCode")
	}
	w.code = code
	return nil
}

func (w *Warehouse) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("warehouseName")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setMaxCapacity(maxCapacityCBM float64) error {
	if maxCapacityCBM <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxCapacityCBM", fmt.Errorf("%g is not greater than 0", maxCapacityCBM))
	}
	w.maxCapacityCBM = maxCapacityCBM
	return nil
}
