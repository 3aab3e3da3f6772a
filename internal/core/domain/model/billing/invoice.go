package billing

import (
	"errors"
	"fmt"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

// ErrInvoiceIsNotConstructed is returned when an Invoice instance was not
// created through the NewInvoice or RestoreInvoice factory methods.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice constructor")

// Invoice is the aggregate root for one bill against an order.
//
// Invariants:
//   - total = subtotal + tax, tax = round(subtotal * TaxRate, 2, half-up)
//   - balance = total - paid; fully paid iff paid >= total
//   - derived amounts are recomputed synchronously on every fee change
//   - superseded invoices never govern payment-status reporting
type Invoice struct {
	id            kernel.UUID
	invoiceNumber string
	orderID       kernel.UUID
	invoiceType   InvoiceType
	status        InvoiceStatus

	currency string
	fees     Fees
	subtotal float64
	tax      float64
	total    float64
	paid     float64

	dueDate      *time.Time
	issuedAt     *time.Time
	paidAt       *time.Time
	createdAt    time.Time
	supersededBy *kernel.UUID

	guard guard.ConstructorGuard
}

// NewInvoice creates a Draft invoice with the given fee schedule. The
// derived amounts are computed immediately.
func NewInvoice(
	id kernel.UUID,
	invoiceNumber string,
	orderID kernel.UUID,
	invoiceType InvoiceType,
	currency string,
	fees Fees,
	now time.Time,
) (*Invoice, error) {
	inv := &Invoice{
		status:    Draft,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setInvoiceNumber(invoiceNumber),
		inv.setOrderID(orderID),
		inv.setInvoiceType(invoiceType),
		inv.setCurrency(currency),
		inv.setFees(fees),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInvoice reconstructs an Invoice from persistent storage. Derived
// amounts are recomputed from the restored fees; the paid amount is trusted
// from the store.
func RestoreInvoice(
	id kernel.UUID,
	invoiceNumber string,
	orderID kernel.UUID,
	invoiceType InvoiceType,
	status InvoiceStatus,
	currency string,
	fees Fees,
	paid float64,
	dueDate *time.Time,
	issuedAt *time.Time,
	paidAt *time.Time,
	createdAt time.Time,
	supersededBy *kernel.UUID,
) (*Invoice, error) {
	inv := &Invoice{
		dueDate:      dueDate,
		issuedAt:     issuedAt,
		paidAt:       paidAt,
		createdAt:    createdAt,
		supersededBy: supersededBy,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setInvoiceNumber(invoiceNumber),
		inv.setOrderID(orderID),
		inv.setInvoiceType(invoiceType),
		inv.setStatus(status),
		inv.setCurrency(currency),
		inv.setFees(fees),
		inv.setPaid(paid),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// Validate ensures the Invoice instance was properly constructed.
func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

// IsEqual compares two invoices by their unique identifiers.
func (i *Invoice) IsEqual(other *Invoice) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// InvoiceNumber returns the human-facing unique invoice number.
func (i *Invoice) InvoiceNumber() string {
	return i.invoiceNumber
}

// OrderID returns the identifier of the billed order.
func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

// Type returns the invoice classification.
func (i *Invoice) Type() InvoiceType {
	return i.invoiceType
}

// Status returns the current payment lifecycle status.
func (i *Invoice) Status() InvoiceStatus {
	return i.status
}

// Currency returns the invoice currency code.
func (i *Invoice) Currency() string {
	return i.currency
}

// Fees returns the current fee schedule.
func (i *Invoice) Fees() Fees {
	return i.fees
}

// Subtotal returns the summed fee components.
func (i *Invoice) Subtotal() float64 {
	return i.subtotal
}

// Tax returns the 7% tax on the subtotal, rounded half-up to 2 decimals.
func (i *Invoice) Tax() float64 {
	return i.tax
}

// Total returns subtotal plus tax.
func (i *Invoice) Total() float64 {
	return i.total
}

// Paid returns the cumulative amount paid.
func (i *Invoice) Paid() float64 {
	return i.paid
}

// Balance returns the outstanding amount, total minus paid, floored at zero.
func (i *Invoice) Balance() float64 {
	balance := kernel.RoundHalfUp(i.total-i.paid, 2)
	if balance < 0 {
		return 0
	}
	return balance
}

// IsFullyPaid reports whether the paid amount covers the total.
func (i *Invoice) IsFullyPaid() bool {
	return i.paid >= i.total
}

// IsOverdue reports whether the due date has passed while the invoice
// remains unpaid. Draft and cancelled invoices are never overdue.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.dueDate == nil || i.IsFullyPaid() {
		return false
	}
	if i.status == Draft || i.status == Cancelled {
		return false
	}
	return now.After(*i.dueDate)
}

// IsSuperseded reports whether a newer invoice replaced this one.
func (i *Invoice) IsSuperseded() bool {
	return i.supersededBy != nil
}

// SupersededBy returns the identifier of the replacing invoice, if any.
func (i *Invoice) SupersededBy() *kernel.UUID {
	return i.supersededBy
}

// DueDate returns the payment due date, nil before issuing.
func (i *Invoice) DueDate() *time.Time {
	return i.dueDate
}

// IssuedAt returns when the invoice was issued, nil while in draft.
func (i *Invoice) IssuedAt() *time.Time {
	return i.issuedAt
}

// PaidAt returns when the invoice became fully paid, nil before that.
func (i *Invoice) PaidAt() *time.Time {
	return i.paidAt
}

// CreatedAt returns the invoice creation time.
func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

// UpdateFees replaces the fee schedule and synchronously recomputes the
// derived amounts. Only draft and issued invoices may be recomputed; money
// already sent to the payer is corrected with an additional invoice instead.
func (i *Invoice) UpdateFees(fees Fees) error {
	if i.status != Draft && i.status != Issued {
		return errs.NewInvalidTransitionError("invoice", i.status.String(), i.status.String()+" with new fees")
	}
	return i.setFees(fees)
}

// Issue finalizes a draft invoice with a payment due date.
func (i *Invoice) Issue(dueDate time.Time, now time.Time) error {
	if i.status != Draft {
		return errs.NewInvalidTransitionError("invoice", i.status.String(), Issued.String())
	}

	i.status = Issued
	i.dueDate = &dueDate
	i.issuedAt = &now
	return nil
}

// MarkSent records delivery of the invoice to the payer.
func (i *Invoice) MarkSent() error {
	if i.status != Issued {
		return errs.NewInvalidTransitionError("invoice", i.status.String(), Sent.String())
	}

	i.status = Sent
	return nil
}

// MarkPaymentPending records the payer's acknowledgement.
func (i *Invoice) MarkPaymentPending() error {
	if i.status != Sent && i.status != Issued {
		return errs.NewInvalidTransitionError("invoice", i.status.String(), PaymentPending.String())
	}

	i.status = PaymentPending
	return nil
}

// RegisterPayment adds a positive payment amount. The status advances to
// PartiallyPaid or FullyPaid depending on the resulting balance; the paidAt
// timestamp is set when the invoice becomes fully paid.
func (i *Invoice) RegisterPayment(amount float64, now time.Time) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%g is not greater than 0", amount))
	}

	if !i.status.AcceptsPayment() {
		return errs.NewInvalidTransitionError("invoice", i.status.String(), PartiallyPaid.String())
	}

	i.paid = kernel.RoundHalfUp(i.paid+amount, 2)
	if i.IsFullyPaid() {
		i.status = FullyPaid
		i.paidAt = &now
	} else {
		i.status = PartiallyPaid
	}
	return nil
}

// MarkOverdue flags the invoice as overdue. It is a no-op unless the due
// date has actually passed while the invoice remains unpaid.
func (i *Invoice) MarkOverdue(now time.Time) error {
	if !i.IsOverdue(now) {
		return nil
	}

	i.status = Overdue
	return nil
}

// Cancel voids a non-final invoice.
func (i *Invoice) Cancel() error {
	if i.status.IsFinal() {
		return errs.NewInvalidTransitionError("invoice", i.status.String(), Cancelled.String())
	}

	i.status = Cancelled
	return nil
}

// Supersede marks this invoice as replaced by a newer one, removing it from
// payment-status reporting.
func (i *Invoice) Supersede(byID kernel.UUID) error {
	if err := byID.Validate(); err != nil {
		return err
	}
	if byID.IsEqual(i.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"supersededBy", errors.New("an invoice cannot supersede itself"))
	}

	i.supersededBy = &byID
	return nil
}

// recalculate recomputes subtotal, tax and total from the current fees.
// Invoked at every fee mutation so monetary fields are never stale.
func (i *Invoice) recalculate() {
	i.subtotal = i.fees.Subtotal()
	i.tax = kernel.RoundHalfUp(i.subtotal*TaxRate, 2)
	i.total = kernel.RoundHalfUp(i.subtotal+i.tax, 2)
}

func (i *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	i.invoiceNumber = invoiceNumber
	return nil
}

func (i *Invoice) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Invoice) setInvoiceType(invoiceType InvoiceType) error {
	if err := invoiceType.Validate(); err != nil {
		return err
	}
	i.invoiceType = invoiceType
	return nil
}

func (i *Invoice) setStatus(status InvoiceStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	i.status = status
	return nil
}

func (i *Invoice) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	i.currency = currency
	return nil
}

func (i *Invoice) setFees(fees Fees) error {
	if err := fees.Validate(); err != nil {
		return err
	}

	i.fees = fees
	i.recalculate()
	return nil
}

func (i *Invoice) setPaid(paid float64) error {
	if paid < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"paid", fmt.Errorf("%g is negative", paid))
	}
	i.paid = paid
	return nil
}
