package order

import (
	"errors"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrAuditEntryIsNotConstructed is returned when attempting to use an
// improperly initialized AuditEntry.
var ErrAuditEntryIsNotConstructed = errors.New(
	"AuditEntry must be created via NewAuditEntry or RestoreAuditEntry constructor")

// AuditEntry is an append-only record of a single order status change.
// Entries are owned by the Order aggregate and are never mutated after
// creation.
type AuditEntry struct {
	id             kernel.UUID
	previousStatus Status
	newStatus      Status
	reason         string
	actor          string
	occurredAt     time.Time
	guard          guard.ConstructorGuard
}

// NewAuditEntry creates an audit record for a status change. The previous
// status may be Unknown for the entry written at order creation; the new
// status must always be valid. Actor identifies the user or system component
// that performed the change.
func NewAuditEntry(
	id kernel.UUID,
	previousStatus Status,
	newStatus Status,
	reason string,
	actor string,
	occurredAt time.Time,
) (*AuditEntry, error) {
	entry := &AuditEntry{
		previousStatus: previousStatus,
		reason:         reason,
		occurredAt:     occurredAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setNewStatus(newStatus),
		entry.setActor(actor),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreAuditEntry reconstructs an AuditEntry from persistent storage.
func RestoreAuditEntry(
	id kernel.UUID,
	previousStatus Status,
	newStatus Status,
	reason string,
	actor string,
	occurredAt time.Time,
) (*AuditEntry, error) {
	return NewAuditEntry(id, previousStatus, newStatus, reason, actor, occurredAt)
}

// Validate checks if the AuditEntry was properly constructed.
func (e *AuditEntry) Validate() error {
	if e == nil {
		return ErrAuditEntryIsNotConstructed
	}
	return e.guard.Validate(ErrAuditEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *AuditEntry) ID() kernel.UUID {
	return e.id
}

// PreviousStatus returns the status before the change, Unknown for the
// creation entry.
func (e *AuditEntry) PreviousStatus() Status {
	return e.previousStatus
}

// NewStatus returns the status after the change.
func (e *AuditEntry) NewStatus() Status {
	return e.newStatus
}

// Reason returns the free-form reason supplied with the change.
func (e *AuditEntry) Reason() string {
	return e.reason
}

// Actor returns the identifier of who performed the change.
func (e *AuditEntry) Actor() string {
	return e.actor
}

// OccurredAt returns when the change happened.
func (e *AuditEntry) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *AuditEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *AuditEntry) setNewStatus(newStatus Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	e.newStatus = newStatus
	return nil
}

func (e *AuditEntry) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}
