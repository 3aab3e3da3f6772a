package commands

import (
	"errors"

	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrRecordPaymentCommandIsNotConstructed = errors.New(
		"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
	)
)

// RecordPaymentCommand represents a payment received against an invoice.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	invoiceNumber string
	amount        float64
	actor         string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment.
// The amount must be strictly positive.
func NewRecordPaymentCommand(
	invoiceNumber string,
	amount float64,
	actor string,
) (RecordPaymentCommand, error) {
	paymentCommand := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentCommand.setInvoiceNumber(invoiceNumber),
		paymentCommand.setAmount(amount),
		paymentCommand.setActor(actor),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordPaymentCommandIsNotConstructed if validation fails.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// InvoiceNumber returns the invoice being paid.
func (c RecordPaymentCommand) InvoiceNumber() string {
	return c.invoiceNumber
}

// Amount returns the payment amount.
func (c RecordPaymentCommand) Amount() float64 {
	return c.amount
}

// Actor returns the identity of the operator recording the payment.
func (c RecordPaymentCommand) Actor() string {
	return c.actor
}

func (c *RecordPaymentCommand) setInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}

	c.invoiceNumber = invoiceNumber
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, nil)
	}

	c.amount = amount
	return nil
}

func (c *RecordPaymentCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
