package commands

import (
	"context"
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
)

// IssueInvoiceResult summarizes a freshly issued invoice.
type IssueInvoiceResult struct {
	InvoiceID     string
	InvoiceNumber string
	InvoiceType   string
	Status        string
	Subtotal      float64
	Tax           float64
	Total         float64
	DueDate       time.Time
	Superseded    []string
}

// IssueInvoiceCommandHandler issues invoices from a fee schedule.
// Earlier open invoices of the order are marked superseded so only the
// newest invoice governs payment-status reporting; the order moves into
// BILLING when it was sitting in DELIVERED.
type IssueInvoiceCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewIssueInvoiceCommandHandler creates a handler for invoice issuing.
func NewIssueInvoiceCommandHandler(uowFactory BillingUoWFactory) IssueInvoiceCommandHandler {
	return IssueInvoiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle issues the invoice.
func (h *IssueInvoiceCommandHandler) Handle(
	ctx context.Context,
	cmd IssueInvoiceCommand,
) (IssueInvoiceResult, error) {
	if err := cmd.Validate(); err != nil {
		return IssueInvoiceResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return IssueInvoiceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return IssueInvoiceResult{}, err
	}

	invoiceRepo := uow.InvoiceRepository()
	invoiceNumber, err := invoiceRepo.NextInvoiceNumber(ctx, now.Year())
	if err != nil {
		return IssueInvoiceResult{}, err
	}

	invoice, err := billing.NewInvoice(
		kernel.NewUUID(),
		invoiceNumber,
		aggregate.ID(),
		cmd.InvoiceType(),
		cmd.Currency(),
		cmd.Fees(),
		now,
	)
	if err != nil {
		return IssueInvoiceResult{}, err
	}

	if err = invoice.Issue(cmd.DueDate(), now); err != nil {
		return IssueInvoiceResult{}, err
	}

	if err = invoiceRepo.Add(ctx, invoice); err != nil {
		return IssueInvoiceResult{}, err
	}

	superseded, err := h.supersedeOpenInvoices(ctx, uow, aggregate.ID(), invoice)
	if err != nil {
		return IssueInvoiceResult{}, err
	}

	if aggregate.Status() == order.Delivered {
		if err = aggregate.ChangeStatus(order.Billing,
			"invoice "+invoiceNumber+" issued", cmd.Actor(), false, now); err != nil {
			return IssueInvoiceResult{}, err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return IssueInvoiceResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return IssueInvoiceResult{}, err
	}

	return IssueInvoiceResult{
		InvoiceID:     invoice.ID().String(),
		InvoiceNumber: invoice.InvoiceNumber(),
		InvoiceType:   invoice.Type().String(),
		Status:        invoice.Status().String(),
		Subtotal:      invoice.Subtotal(),
		Tax:           invoice.Tax(),
		Total:         invoice.Total(),
		DueDate:       cmd.DueDate(),
		Superseded:    superseded,
	}, nil
}

// supersedeOpenInvoices marks every earlier non-final invoice of the order
// as superseded by the new one.
func (h *IssueInvoiceCommandHandler) supersedeOpenInvoices(
	ctx context.Context,
	uow BillingUoW,
	orderID kernel.UUID,
	newInvoice *billing.Invoice,
) ([]string, error) {
	invoiceRepo := uow.InvoiceRepository()
	existing, err := invoiceRepo.GetAllByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var superseded []string
	for _, invoice := range existing {
		if invoice.ID().IsEqual(newInvoice.ID()) || invoice.IsSuperseded() || invoice.Status().IsFinal() {
			continue
		}

		if err = invoice.Supersede(newInvoice.ID()); err != nil {
			return nil, err
		}

		if err = invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}

		superseded = append(superseded, invoice.InvoiceNumber())
	}

	return superseded, nil
}
