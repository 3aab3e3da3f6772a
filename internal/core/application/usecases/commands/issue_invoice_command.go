package commands

import (
	"errors"
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/pkg/errs"
	"lms/internal/pkg/guard"
)

var (
	ErrIssueInvoiceCommandIsNotConstructed = errors.New(
		"IssueInvoiceCommand must be created via NewIssueInvoiceCommand constructor",
	)
)

// IssueInvoiceCommand represents a request to issue an invoice for an
// order from a fee schedule. Issuing a new invoice supersedes any earlier
// open invoice of the order for payment-status reporting.
type IssueInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	invoiceType billing.InvoiceType
	currency    string
	fees        billing.Fees
	dueDate     time.Time
	actor       string

	guard guard.ConstructorGuard
}

// NewIssueInvoiceCommand creates a command to issue an invoice.
func NewIssueInvoiceCommand(
	orderNumber string,
	invoiceType billing.InvoiceType,
	currency string,
	fees billing.Fees,
	dueDate time.Time,
	actor string,
) (IssueInvoiceCommand, error) {
	invoiceCommand := IssueInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		invoiceCommand.setOrderNumber(orderNumber),
		invoiceCommand.setInvoiceType(invoiceType),
		invoiceCommand.setCurrency(currency),
		invoiceCommand.setFees(fees),
		invoiceCommand.setDueDate(dueDate),
		invoiceCommand.setActor(actor),
	); err != nil {
		return IssueInvoiceCommand{}, err
	}

	return invoiceCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIssueInvoiceCommandIsNotConstructed if validation fails.
func (c IssueInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrIssueInvoiceCommandIsNotConstructed)
}

// OrderNumber returns the order the invoice is issued for.
func (c IssueInvoiceCommand) OrderNumber() string {
	return c.orderNumber
}

// InvoiceType returns the kind of invoice being issued.
func (c IssueInvoiceCommand) InvoiceType() billing.InvoiceType {
	return c.invoiceType
}

// Currency returns the invoice currency code.
func (c IssueInvoiceCommand) Currency() string {
	return c.currency
}

// Fees returns the fee schedule the invoice is computed from.
func (c IssueInvoiceCommand) Fees() billing.Fees {
	return c.fees
}

// DueDate returns the payment due date.
func (c IssueInvoiceCommand) DueDate() time.Time {
	return c.dueDate
}

// Actor returns the identity of the issuing operator.
func (c IssueInvoiceCommand) Actor() string {
	return c.actor
}

func (c *IssueInvoiceCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *IssueInvoiceCommand) setInvoiceType(invoiceType billing.InvoiceType) error {
	if err := invoiceType.Validate(); err != nil {
		return err
	}

	c.invoiceType = invoiceType
	return nil
}

func (c *IssueInvoiceCommand) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}

	c.currency = currency
	return nil
}

func (c *IssueInvoiceCommand) setFees(fees billing.Fees) error {
	if err := fees.Validate(); err != nil {
		return err
	}

	c.fees = fees
	return nil
}

func (c *IssueInvoiceCommand) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("dueDate")
	}

	c.dueDate = dueDate
	return nil
}

func (c *IssueInvoiceCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
