package inventory

import (
	"fmt"

	"lms/internal/pkg/errs"
)

// UnitStatus represents the warehouse lifecycle state of an inventory unit.
//
// Main path:
//
//	Pending -> Received -> Inspected -> ReadyToShip -> Shipped
//
// Side branches:
//   - Received or Inspected -> Held, released back to the state it was held
//     from via an explicit release action
//   - Received or Inspected -> Damaged, requiring manual resolution (no
//     automatic exit)
//   - Received or Inspected -> Consumed, when the unit is merged away by a
//     consolidation (terminal)
type UnitStatus int

const (
	// UnitUnknown represents an invalid or undefined unit status.
	UnitUnknown UnitStatus = iota

	// UnitPending means the box is expected but not yet scanned into a warehouse.
	UnitPending

	// UnitReceived means an inbound scan accepted the box into a warehouse.
	UnitReceived

	// UnitInspected means the box passed warehouse inspection.
	UnitInspected

	// UnitReadyToShip means the box is staged for outbound dispatch.
	UnitReadyToShip

	// UnitShipped means an outbound scan dispatched the box. Terminal.
	UnitShipped

	// UnitHeld means the box is temporarily held pending resolution.
	UnitHeld

	// UnitDamaged means the box was found damaged; manual resolution required.
	UnitDamaged

	// UnitConsumed means the box was merged into a consolidated unit. Terminal.
	UnitConsumed
)

func getUnitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitUnknown:     "UNKNOWN",
		UnitPending:     "PENDING",
		UnitReceived:    "RECEIVED",
		UnitInspected:   "INSPECTED",
		UnitReadyToShip: "READY_TO_SHIP",
		UnitShipped:     "SHIPPED",
		UnitHeld:        "HELD",
		UnitDamaged:     "DAMAGED",
		UnitConsumed:    "CONSUMED",
	}
}

// UnitStatusFromString parses a unit status from its canonical name.
func UnitStatusFromString(s string) (UnitStatus, error) {
	for status, name := range getUnitStatusStrings() {
		if status != UnitUnknown && name == s {
			return status, nil
		}
	}
	return UnitUnknown, errs.NewValueIsInvalidErrorWithCause(
		"unitStatus", fmt.Errorf("%q is not a known unit status", s))
}

// Validate checks if the UnitStatus value is valid.
func (s UnitStatus) Validate() error {
	if s <= UnitUnknown || s > UnitConsumed {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitStatus", fmt.Errorf("%d is not a valid unit status", s))
	}
	return nil
}

// String returns the canonical uppercase name of the status.
func (s UnitStatus) String() string {
	if str, ok := getUnitStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s UnitStatus) IsTerminal() bool {
	return s == UnitShipped || s == UnitConsumed
}

// CanBeShipped reports whether an outbound scan may dispatch a unit in this
// state. Inspected units may ship directly when staging is skipped.
func (s UnitStatus) CanBeShipped() bool {
	return s == UnitReadyToShip || s == UnitInspected
}

// CanBeHeld reports whether the unit may enter the held branch.
func (s UnitStatus) CanBeHeld() bool {
	return s == UnitReceived || s == UnitInspected
}

// IsConsolidatable reports whether the unit may participate in a mixbox
// consolidation, either as a source or by being created from one.
func (s UnitStatus) IsConsolidatable() bool {
	return s == UnitReceived || s == UnitInspected
}

// NextAction returns the suggested follow-up action for warehouse staff
// after a scan leaves the unit in this state.
func (s UnitStatus) NextAction() string {
	switch s {
	case UnitPending:
		return "inbound_scan"
	case UnitReceived:
		return "inspect"
	case UnitInspected:
		return "ready_for_outbound"
	case UnitReadyToShip:
		return "outbound_scan"
	case UnitHeld:
		return "resolve_hold"
	case UnitDamaged:
		return "resolve_damage"
	default:
		return "none"
	}
}
