package inventory

import (
	"errors"
	"fmt"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ScanType classifies a single warehouse scan action.
type ScanType int

const (
	// ScanUnknown represents an invalid or undefined scan type.
	ScanUnknown ScanType = iota

	// ScanInbound accepts a pending unit into a warehouse.
	ScanInbound

	// ScanOutbound dispatches a unit from the warehouse.
	ScanOutbound

	// ScanHold places a unit into the held branch.
	ScanHold

	// ScanRelease returns a held unit to its previous state.
	ScanRelease

	// ScanInventory is a read-only audit scan; it changes no state.
	ScanInventory

	// ScanMixbox records a consolidation of several units into one.
	ScanMixbox

	// ScanInspect records a quality inspection of a received unit.
	ScanInspect

	// ScanReady marks an inspected unit as ready for outbound dispatch.
	ScanReady
)

func getScanTypeStrings() map[ScanType]string {
	return map[ScanType]string{
		ScanUnknown:   "unknown",
		ScanInbound:   "inbound",
		ScanOutbound:  "outbound",
		ScanHold:      "hold",
		ScanRelease:   "release",
		ScanInventory: "inventory",
		ScanMixbox:    "mixbox",
		ScanInspect:   "inspect",
		ScanReady:     "ready",
	}
}

// ScanTypeFromString parses a scan type from its lowercase wire name.
func ScanTypeFromString(s string) (ScanType, error) {
	for scanType, name := range getScanTypeStrings() {
		if scanType != ScanUnknown && name == s {
			return scanType, nil
		}
	}
	return ScanUnknown, errs.NewValueIsInvalidErrorWithCause(
		"scanType", fmt.Errorf("%q is not a known scan type", s))
}

// Validate checks if the ScanType value is valid.
func (t ScanType) Validate() error {
	if t <= ScanUnknown || t > ScanReady {
		return errs.NewValueIsInvalidErrorWithCause(
			"scanType", fmt.Errorf("%d is not a valid scan type", t))
	}
	return nil
}

// String returns the lowercase wire name of the scan type.
func (t ScanType) String() string {
	if str, ok := getScanTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// IsRepeatable reports whether re-submitting the same scan for the same
// label is legitimate rather than a duplicate. Hold and release toggle a
// branch and are repeatable; inventory scans are read-only audits.
func (t ScanType) IsRepeatable() bool {
	return t == ScanHold || t == ScanRelease || t == ScanInventory
}

// ErrScanEventIsNotConstructed is returned when a ScanEvent instance was not
// created through its factory methods.
var ErrScanEventIsNotConstructed = errors.New(
	"ScanEvent must be created via NewScanEvent or RestoreScanEvent constructor")

// ScanEvent is an immutable record of a single scan action. Scan events feed
// duplicate detection and the tracking aggregator and are never mutated
// after creation.
type ScanEvent struct {
	id          kernel.UUID
	scanCode    string
	labelCode   string
	scanType    ScanType
	warehouseID *kernel.UUID
	actor       string
	location    string
	note        string
	photoURLs   []string
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewScanEvent creates an immutable scan record. The scan code must be
// unique per event; photo URLs are opaque references into a file store.
func NewScanEvent(
	id kernel.UUID,
	scanCode string,
	labelCode string,
	scanType ScanType,
	warehouseID *kernel.UUID,
	actor string,
	location string,
	note string,
	photoURLs []string,
	occurredAt time.Time,
) (*ScanEvent, error) {
	e := &ScanEvent{
		warehouseID: warehouseID,
		location:    location,
		note:        note,
		photoURLs:   photoURLs,
		occurredAt:  occurredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setScanCode(scanCode),
		e.setLabelCode(labelCode),
		e.setScanType(scanType),
		e.setActor(actor),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreScanEvent reconstructs a ScanEvent from persistent storage.
func RestoreScanEvent(
	id kernel.UUID,
	scanCode string,
	labelCode string,
	scanType ScanType,
	warehouseID *kernel.UUID,
	actor string,
	location string,
	note string,
	photoURLs []string,
	occurredAt time.Time,
) (*ScanEvent, error) {
	return NewScanEvent(id, scanCode, labelCode, scanType, warehouseID, actor, location, note, photoURLs, occurredAt)
}

// Validate ensures the ScanEvent instance was properly constructed.
func (e *ScanEvent) Validate() error {
	if e == nil {
		return ErrScanEventIsNotConstructed
	}
	return e.guard.Validate(ErrScanEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *ScanEvent) ID() kernel.UUID {
	return e.id
}

// ScanCode returns the unique code assigned to this scan.
func (e *ScanEvent) ScanCode() string {
	return e.scanCode
}

// LabelCode returns the label code that was scanned.
func (e *ScanEvent) LabelCode() string {
	return e.labelCode
}

// Type returns the scan classification.
func (e *ScanEvent) Type() ScanType {
	return e.scanType
}

// WarehouseID returns the warehouse the scan happened in, nil for scans
// outside a warehouse context.
func (e *ScanEvent) WarehouseID() *kernel.UUID {
	return e.warehouseID
}

// Actor returns the identifier of who performed the scan.
func (e *ScanEvent) Actor() string {
	return e.actor
}

// Location returns the physical location noted at scan time, possibly empty.
func (e *ScanEvent) Location() string {
	return e.location
}

// Note returns the free-form operator note, possibly empty.
func (e *ScanEvent) Note() string {
	return e.note
}

// PhotoURLs returns opaque references to photos taken at scan time.
func (e *ScanEvent) PhotoURLs() []string {
	return e.photoURLs
}

// OccurredAt returns when the scan happened.
func (e *ScanEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *ScanEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *ScanEvent) setScanCode(scanCode string) error {
	if scanCode == "" {
		return errs.NewValueIsRequiredError("scanCode")
	}
	e.scanCode = scanCode
	return nil
}

func (e *ScanEvent) setLabelCode(labelCode string) error {
	if labelCode == "" {
		return errs.NewValueIsRequiredError("labelCode")
	}
	e.labelCode = labelCode
	return nil
}

func (e *ScanEvent) setScanType(scanType ScanType) error {
	if err := scanType.Validate(); err != nil {
		return err
	}
	e.scanType = scanType
	return nil
}

func (e *ScanEvent) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}
