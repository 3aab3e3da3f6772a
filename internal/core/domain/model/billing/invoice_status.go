package billing

import (
	"fmt"

	"lms/internal/pkg/errs"
)

// InvoiceType classifies the role of an invoice within an order.
type InvoiceType int

const (
	// TypeUnknown represents an invalid or undefined invoice type.
	TypeUnknown InvoiceType = iota

	// Proforma is the preliminary invoice issued before final measurements.
	Proforma

	// Additional covers charges discovered after the proforma was issued.
	Additional

	// Final is the settling invoice for the order.
	Final
)

// InvoiceTypeFromString parses an invoice type from its canonical name.
func InvoiceTypeFromString(s string) (InvoiceType, error) {
	switch s {
	case "PROFORMA":
		return Proforma, nil
	case "ADDITIONAL":
		return Additional, nil
	case "FINAL":
		return Final, nil
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"invoiceType", fmt.Errorf("%q is not a known invoice type", s))
}

// Validate checks if the InvoiceType value is valid.
func (t InvoiceType) Validate() error {
	if t < Proforma || t > Final {
		return errs.NewValueIsInvalidErrorWithCause(
			"invoiceType", fmt.Errorf("%d is not a valid invoice type", t))
	}
	return nil
}

// String returns the canonical uppercase name of the invoice type.
func (t InvoiceType) String() string {
	switch t {
	case Proforma:
		return "PROFORMA"
	case Additional:
		return "ADDITIONAL"
	case Final:
		return "FINAL"
	default:
		return "UNKNOWN"
	}
}

// InvoiceStatus represents the payment lifecycle state of an invoice.
//
// Lifecycle:
//
//	Draft -> Issued -> Sent -> PaymentPending -> (PartiallyPaid) -> FullyPaid
//
// Overdue is entered when the due date passes while unpaid; Cancelled is
// reachable from any non-final state.
type InvoiceStatus int

const (
	// StatusUnknown represents an invalid or undefined invoice status.
	StatusUnknown InvoiceStatus = iota

	// Draft means the invoice is being prepared and not yet visible to the payer.
	Draft

	// Issued means the invoice has been finalized with a due date.
	Issued

	// Sent means the invoice has been delivered to the payer.
	Sent

	// PaymentPending means the payer acknowledged the invoice and payment is expected.
	PaymentPending

	// PartiallyPaid means some but not all of the total has been paid.
	PartiallyPaid

	// FullyPaid means the paid amount covers the total. Terminal.
	FullyPaid

	// Overdue means the due date passed while the invoice was unpaid.
	Overdue

	// Cancelled means the invoice was voided. Terminal.
	Cancelled
)

func getInvoiceStatusStrings() map[InvoiceStatus]string {
	return map[InvoiceStatus]string{
		StatusUnknown:  "UNKNOWN",
		Draft:          "DRAFT",
		Issued:         "ISSUED",
		Sent:           "SENT",
		PaymentPending: "PAYMENT_PENDING",
		PartiallyPaid:  "PARTIALLY_PAID",
		FullyPaid:      "FULLY_PAID",
		Overdue:        "OVERDUE",
		Cancelled:      "CANCELLED",
	}
}

// InvoiceStatusFromString parses an invoice status from its canonical name.
func InvoiceStatusFromString(s string) (InvoiceStatus, error) {
	for status, name := range getInvoiceStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"invoiceStatus", fmt.Errorf("%q is not a known invoice status", s))
}

// Validate checks if the InvoiceStatus value is valid.
func (s InvoiceStatus) Validate() error {
	if s <= StatusUnknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"invoiceStatus", fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

// String returns the canonical uppercase name of the status.
func (s InvoiceStatus) String() string {
	if str, ok := getInvoiceStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether the status admits no further changes.
func (s InvoiceStatus) IsFinal() bool {
	return s == FullyPaid || s == Cancelled
}

// AcceptsPayment reports whether a payment may be registered in this state.
func (s InvoiceStatus) AcceptsPayment() bool {
	switch s {
	case Issued, Sent, PaymentPending, PartiallyPaid, Overdue:
		return true
	default:
		return false
	}
}
