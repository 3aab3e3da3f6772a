package order

import (
	"errors"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a cross-border shipment order. It is the aggregate root
// that manages the order lifecycle from intake through warehousing, transit,
// delivery and settlement.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a unique order number
//   - Owns its boxes, items and audit history (created and destroyed together)
//   - Total CBM and weight are recomputed synchronously on every box mutation
//   - The shipping method is Air whenever total CBM strictly exceeds the
//     sea-freight threshold (enforced by the rule evaluator)
//   - Status transitions follow the explicit adjacency table in Status
//   - Audit history is append-only; a same-status change is a no-op that
//     writes no entry
type Order struct {
	id          kernel.UUID
	orderNumber string
	memberCode  string
	recipient   Recipient

	shippingMethod Method
	status         Status
	delayed        bool

	requiresExtraRecipient bool
	noMemberCode           bool

	totalCBM    float64
	totalWeight float64

	storageLocation string

	createdAt   time.Time
	arrivedAt   *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time

	boxes   []*Box
	items   []*Item
	history []*AuditEntry

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Received status with an empty box and item
// list. The creation is recorded as the first audit history entry attributed
// to actor. The noMemberCode compliance flag is seeded from the presence of
// the member code and refined later by the rule evaluator.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	memberCode string,
	recipient Recipient,
	requestedMethod Method,
	actor string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		memberCode:   memberCode,
		status:       Received,
		noMemberCode: memberCode == "",
		createdAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setRecipient(recipient),
		o.setShippingMethod(requestedMethod),
	); err != nil {
		return nil, err
	}

	entry, err := NewAuditEntry(kernel.NewUUID(), Unknown, Received, "order received", actor, now)
	if err != nil {
		return nil, err
	}
	o.history = append(o.history, entry)

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its boxes, items and audit history. Totals are recomputed from
// the restored boxes so the derived values can never drift from their source.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	memberCode string,
	recipient Recipient,
	shippingMethod Method,
	status Status,
	delayed bool,
	requiresExtraRecipient bool,
	noMemberCode bool,
	storageLocation string,
	createdAt time.Time,
	arrivedAt *time.Time,
	shippedAt *time.Time,
	deliveredAt *time.Time,
	boxes []*Box,
	items []*Item,
	history []*AuditEntry,
) (*Order, error) {
	o := &Order{
		memberCode:             memberCode,
		delayed:                delayed,
		requiresExtraRecipient: requiresExtraRecipient,
		noMemberCode:           noMemberCode,
		storageLocation:        storageLocation,
		createdAt:              createdAt,
		arrivedAt:              arrivedAt,
		shippedAt:              shippedAt,
		deliveredAt:            deliveredAt,
		guard:                  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setRecipient(recipient),
		o.setShippingMethod(shippingMethod),
		o.setStatus(status),
		o.setBoxes(boxes),
		o.setItems(items),
		o.setHistory(history),
	); err != nil {
		return nil, err
	}

	o.recalculateTotals()
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing unique order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// MemberCode returns the customer's membership code, possibly empty.
func (o *Order) MemberCode() string {
	return o.memberCode
}

// Recipient returns the delivery recipient block.
func (o *Order) Recipient() Recipient {
	return o.recipient
}

// ShippingMethod returns the resolved shipping method.
func (o *Order) ShippingMethod() Method {
	return o.shippingMethod
}

// Status returns the current canonical lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Delayed reports whether the order carries the delay overlay flag.
// Delay is orthogonal to the lifecycle status.
func (o *Order) Delayed() bool {
	return o.delayed
}

// RequiresExtraRecipient reports the declared-value compliance flag.
func (o *Order) RequiresExtraRecipient() bool {
	return o.requiresExtraRecipient
}

// NoMemberCode reports the missing-membership-code compliance flag.
func (o *Order) NoMemberCode() bool {
	return o.noMemberCode
}

// TotalCBM returns the summed cubic-meter volume of all boxes.
func (o *Order) TotalCBM() float64 {
	return o.totalCBM
}

// TotalWeight returns the summed weight of all boxes in kilograms.
func (o *Order) TotalWeight() float64 {
	return o.totalWeight
}

// StorageLocation returns the warehouse storage location, possibly empty.
func (o *Order) StorageLocation() string {
	return o.storageLocation
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ArrivedAt returns when the goods reached the warehouse, nil before Arrived.
func (o *Order) ArrivedAt() *time.Time {
	return o.arrivedAt
}

// ShippedAt returns when international transit started, nil before Shipping.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// DeliveredAt returns when the goods reached the recipient, nil before Delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Boxes returns the boxes owned by the order.
func (o *Order) Boxes() []*Box {
	return o.boxes
}

// Items returns the declared items owned by the order.
func (o *Order) Items() []*Item {
	return o.items
}

// History returns the append-only audit history, oldest first.
func (o *Order) History() []*AuditEntry {
	return o.history
}

// BoxByLabel returns the box carrying the given label code, or an
// ObjectNotFoundError.
func (o *Order) BoxByLabel(labelCode string) (*Box, error) {
	for _, box := range o.boxes {
		if box.LabelCode() == labelCode {
			return box, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("labelCode", labelCode)
}

// AddBox appends a box to the order and recomputes the totals.
// Label codes must be unique within the order.
func (o *Order) AddBox(box *Box) error {
	if err := box.Validate(); err != nil {
		return err
	}

	for _, existing := range o.boxes {
		if existing.LabelCode() == box.LabelCode() {
			return errs.NewDuplicateResourceError("labelCode", box.LabelCode())
		}
	}

	o.boxes = append(o.boxes, box)
	o.recalculateTotals()
	return nil
}

// ReplaceBoxes swaps the full box list and recomputes the totals.
// Used when a client resubmits box measurements after repacking.
func (o *Order) ReplaceBoxes(boxes []*Box) error {
	if err := o.setBoxes(boxes); err != nil {
		return err
	}

	o.recalculateTotals()
	return nil
}

// AddItem appends a declared item to the order.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	o.items = append(o.items, item)
	return nil
}

// TotalDeclaredValue returns the summed declared value of all items,
// rounded to 2 decimal places.
func (o *Order) TotalDeclaredValue() float64 {
	var total float64
	for _, item := range o.items {
		total += item.TotalValue()
	}
	return kernel.RoundHalfUp(total, 2)
}

// ApplyEvaluation records the outcome of a business rule evaluation: the
// resolved shipping method and both compliance flags. Called at order
// creation and again on any later edit that changes boxes, items or value.
func (o *Order) ApplyEvaluation(method Method, requiresExtraRecipient, noMemberCode bool) error {
	if err := o.setShippingMethod(method); err != nil {
		return err
	}

	o.requiresExtraRecipient = requiresExtraRecipient
	o.noMemberCode = noMemberCode
	return nil
}

// ChangeStatus transitions the order to newStatus and appends an audit entry.
//
// Business rules:
//   - Requesting the current status again is a no-op: no error, no entry.
//   - Regular transitions must follow the status adjacency table.
//   - corrective allows administrator-flagged moves between any two valid
//     states, including backward corrections; the audit entry still records
//     both states and the actor.
//   - Milestone timestamps (arrived, shipped, delivered) are set on first
//     entry into the corresponding state.
func (o *Order) ChangeStatus(newStatus Status, reason, actor string, corrective bool, now time.Time) error {
	if newStatus == o.status {
		return nil
	}

	if corrective {
		if err := newStatus.Validate(); err != nil {
			return err
		}
	} else {
		next, err := o.status.TransitionTo(newStatus)
		if err != nil {
			return err
		}
		newStatus = next
	}

	entry, err := NewAuditEntry(kernel.NewUUID(), o.status, newStatus, reason, actor, now)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, entry)
	o.touchMilestone(newStatus, now)
	return nil
}

// MarkDelayed sets or clears the delay overlay flag.
func (o *Order) MarkDelayed(delayed bool) {
	o.delayed = delayed
}

// SetStorageLocation records where the goods are stored in the warehouse.
func (o *Order) SetStorageLocation(location string) {
	o.storageLocation = location
}

// recalculateTotals recomputes total CBM and weight from the current boxes.
// Invoked at every mutation site so derived values are never stale.
func (o *Order) recalculateTotals() {
	var cbm, weight float64
	for _, box := range o.boxes {
		cbm += box.CBM()
		weight += box.WeightKg()
	}

	o.totalCBM = kernel.RoundHalfUp(cbm, kernel.CBMPrecision)
	o.totalWeight = kernel.RoundHalfUp(weight, 3)
}

func (o *Order) touchMilestone(status Status, now time.Time) {
	switch status {
	case Arrived:
		if o.arrivedAt == nil {
			o.arrivedAt = &now
		}
	case Shipping:
		if o.shippedAt == nil {
			o.shippedAt = &now
		}
	case Delivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	default:
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setRecipient(recipient Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	o.recipient = recipient
	return nil
}

func (o *Order) setShippingMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.shippingMethod = method
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setBoxes(boxes []*Box) error {
	seen := make(map[string]struct{}, len(boxes))
	for _, box := range boxes {
		if err := box.Validate(); err != nil {
			return err
		}
		if _, ok := seen[box.LabelCode()]; ok {
			return errs.NewDuplicateResourceError("labelCode", box.LabelCode())
		}
		seen[box.LabelCode()] = struct{}{}
	}

	o.boxes = boxes
	return nil
}

func (o *Order) setItems(items []*Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = items
	return nil
}

func (o *Order) setHistory(history []*AuditEntry) error {
	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	o.history = history
	return nil
}
