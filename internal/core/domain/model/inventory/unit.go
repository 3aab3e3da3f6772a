package inventory

import (
	"errors"
	"fmt"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrUnitIsNotConstructed is returned when a Unit instance was not created
// through the NewUnit or RestoreUnit factory methods.
var ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit or RestoreUnit constructor")

// Unit is the aggregate root for one physical box inside the warehouse flow.
// It references its Order and current Warehouse by identifier only.
//
// Unit carries an optimistic-locking version: every persisted mutation must
// match the loaded version, so two concurrent scans against the same label
// cannot both succeed.
type Unit struct {
	id            kernel.UUID
	inventoryCode string
	labelCode     string
	orderID       kernel.UUID
	warehouseID   *kernel.UUID

	status   UnitStatus
	heldFrom UnitStatus

	location string
	weightKg float64
	cbm      float64

	receivedBy  string
	inspectedBy string
	shippedBy   string
	receivedAt  *time.Time
	inspectedAt *time.Time
	shippedAt   *time.Time

	version int

	guard guard.ConstructorGuard
}

// NewUnit creates a pending Unit for a physical box that has not yet been
// scanned into a warehouse. The weight and CBM are carried over from the
// order box so capacity accounting does not depend on the order aggregate.
func NewUnit(
	id kernel.UUID,
	inventoryCode string,
	labelCode string,
	orderID kernel.UUID,
	weightKg float64,
	cbm float64,
) (*Unit, error) {
	u := &Unit{
		status:  UnitPending,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setInventoryCode(inventoryCode),
		u.setLabelCode(labelCode),
		u.setOrderID(orderID),
		u.setWeight(weightKg),
		u.setCBM(cbm),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUnit reconstructs a Unit from persistent storage.
func RestoreUnit(
	id kernel.UUID,
	inventoryCode string,
	labelCode string,
	orderID kernel.UUID,
	warehouseID *kernel.UUID,
	status UnitStatus,
	heldFrom UnitStatus,
	location string,
	weightKg float64,
	cbm float64,
	receivedBy string,
	inspectedBy string,
	shippedBy string,
	receivedAt *time.Time,
	inspectedAt *time.Time,
	shippedAt *time.Time,
	version int,
) (*Unit, error) {
	u := &Unit{
		warehouseID: warehouseID,
		heldFrom:    heldFrom,
		location:    location,
		receivedBy:  receivedBy,
		inspectedBy: inspectedBy,
		shippedBy:   shippedBy,
		receivedAt:  receivedAt,
		inspectedAt: inspectedAt,
		shippedAt:   shippedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setInventoryCode(inventoryCode),
		u.setLabelCode(labelCode),
		u.setOrderID(orderID),
		u.setStatus(status),
		u.setWeight(weightKg),
		u.setCBM(cbm),
		u.setVersion(version),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the Unit instance was properly constructed.
func (u *Unit) Validate() error {
	if u == nil {
		return ErrUnitIsNotConstructed
	}
	return u.guard.Validate(ErrUnitIsNotConstructed)
}

// IsEqual compares two units by their unique identifiers.
func (u *Unit) IsEqual(other *Unit) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the unit's unique identifier.
func (u *Unit) ID() kernel.UUID {
	return u.id
}

// InventoryCode returns the unique warehouse inventory code.
func (u *Unit) InventoryCode() string {
	return u.inventoryCode
}

// LabelCode returns the physical label code the scanners read.
func (u *Unit) LabelCode() string {
	return u.labelCode
}

// OrderID returns the identifier of the owning order.
func (u *Unit) OrderID() kernel.UUID {
	return u.orderID
}

// WarehouseID returns the identifier of the warehouse holding the unit,
// nil before the first inbound scan.
func (u *Unit) WarehouseID() *kernel.UUID {
	return u.warehouseID
}

// Status returns the current warehouse lifecycle status.
func (u *Unit) Status() UnitStatus {
	return u.status
}

// HeldFrom returns the status the unit was held from, UnitUnknown when the
// unit is not held.
func (u *Unit) HeldFrom() UnitStatus {
	return u.heldFrom
}

// Location returns the physical storage location within the warehouse.
func (u *Unit) Location() string {
	return u.location
}

// WeightKg returns the unit weight in kilograms.
func (u *Unit) WeightKg() float64 {
	return u.weightKg
}

// CBM returns the unit volume in cubic meters.
func (u *Unit) CBM() float64 {
	return u.cbm
}

// ReceivedBy returns the actor of the inbound scan, empty before it.
func (u *Unit) ReceivedBy() string {
	return u.receivedBy
}

// InspectedBy returns the actor of the inspection, empty before it.
func (u *Unit) InspectedBy() string {
	return u.inspectedBy
}

// ShippedBy returns the actor of the outbound scan, empty before it.
func (u *Unit) ShippedBy() string {
	return u.shippedBy
}

// ReceivedAt returns when the unit was received, nil before the inbound scan.
func (u *Unit) ReceivedAt() *time.Time {
	return u.receivedAt
}

// InspectedAt returns when the unit was inspected, nil before inspection.
func (u *Unit) InspectedAt() *time.Time {
	return u.inspectedAt
}

// ShippedAt returns when the unit was dispatched, nil before the outbound scan.
func (u *Unit) ShippedAt() *time.Time {
	return u.shippedAt
}

// Version returns the optimistic-locking version. The persistence layer
// compares it on update and increments it on success.
func (u *Unit) Version() int {
	return u.version
}

// Receive applies an inbound scan: the unit must be pending; it enters the
// given warehouse at the given physical location.
func (u *Unit) Receive(warehouseID kernel.UUID, location, actor string, now time.Time) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	if u.status != UnitPending {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitReceived.String())
	}

	u.status = UnitReceived
	u.warehouseID = &warehouseID
	u.location = location
	u.receivedBy = actor
	u.receivedAt = &now
	return nil
}

// Inspect marks a received unit as inspected.
func (u *Unit) Inspect(actor string, now time.Time) error {
	if u.status != UnitReceived {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitInspected.String())
	}

	u.status = UnitInspected
	u.inspectedBy = actor
	u.inspectedAt = &now
	return nil
}

// MarkReadyToShip stages an inspected unit for outbound dispatch.
func (u *Unit) MarkReadyToShip() error {
	if u.status != UnitInspected {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitReadyToShip.String())
	}

	u.status = UnitReadyToShip
	return nil
}

// Ship applies an outbound scan. The unit must be ready to ship, or
// inspected when staging is skipped.
func (u *Unit) Ship(actor string, now time.Time) error {
	if !u.status.CanBeShipped() {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitShipped.String())
	}

	u.status = UnitShipped
	u.shippedBy = actor
	u.shippedAt = &now
	return nil
}

// Hold moves the unit into the held branch, remembering the state it was
// held from. Holding an already held unit is a no-op: hold scans are
// legitimately repeatable.
func (u *Unit) Hold() error {
	if u.status == UnitHeld {
		return nil
	}

	if !u.status.CanBeHeld() {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitHeld.String())
	}

	u.heldFrom = u.status
	u.status = UnitHeld
	return nil
}

// Release returns a held unit to the state it was held from. Releasing a
// unit that is not held is a no-op, mirroring Hold.
func (u *Unit) Release() error {
	if u.status != UnitHeld {
		return nil
	}

	u.status = u.heldFrom
	u.heldFrom = UnitUnknown
	return nil
}

// MarkDamaged branches the unit into the damaged state, which has no
// automatic exit and requires manual resolution.
func (u *Unit) MarkDamaged() error {
	if !u.status.CanBeHeld() {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitDamaged.String())
	}

	u.status = UnitDamaged
	return nil
}

// Consume terminally retires the unit as a consolidation source.
func (u *Unit) Consume() error {
	if !u.status.IsConsolidatable() {
		return errs.NewInvalidTransitionError("inventory unit", u.status.String(), UnitConsumed.String())
	}

	u.status = UnitConsumed
	return nil
}

// SetLocation updates the physical storage location within the warehouse.
func (u *Unit) SetLocation(location string) {
	u.location = location
}

func (u *Unit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *Unit) setInventoryCode(inventoryCode string) error {
	if inventoryCode == "" {
		return errs.NewValueIsRequiredError("inventoryCode")
	}
	u.inventoryCode = inventoryCode
	return nil
}

func (u *Unit) setLabelCode(labelCode string) error {
	if labelCode == "" {
		return errs.NewValueIsRequiredError("labelCode")
	}
	u.labelCode = labelCode
	return nil
}

func (u *Unit) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	u.orderID = orderID
	return nil
}

func (u *Unit) setStatus(status UnitStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	u.status = status
	return nil
}

func (u *Unit) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg", fmt.Errorf("%g is not greater than 0", weightKg))
	}
	u.weightKg = weightKg
	return nil
}

func (u *Unit) setCBM(cbm float64) error {
	if cbm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"cbm", fmt.Errorf("%g is not greater than 0", cbm))
	}
	u.cbm = cbm
	return nil
}

func (u *Unit) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause(
			"version", fmt.Errorf("%d is not greater than 0", version))
	}
	u.version = version
	return nil
}
