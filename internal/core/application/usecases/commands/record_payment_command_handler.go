package commands

import (
	"context"
	"errors"
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"
)

// RecordPaymentResult summarizes the invoice after a payment was applied.
type RecordPaymentResult struct {
	InvoiceNumber string
	Status        string
	Paid          float64
	Balance       float64
	FullyPaid     bool
}

// RecordPaymentCommandHandler applies payments to invoices.
// A payment that settles the invoice in full advances the owning order
// through PAYMENT_PENDING into PAYMENT_CONFIRMED.
type RecordPaymentCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment recording.
func NewRecordPaymentCommandHandler(uowFactory BillingUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the payment.
// Superseded invoices no longer accept payments; the caller must pay the
// invoice that replaced them.
func (h *RecordPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd RecordPaymentCommand,
) (RecordPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordPaymentResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecordPaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	invoice, err := invoiceRepo.GetByInvoiceNumber(ctx, cmd.InvoiceNumber())
	if err != nil {
		return RecordPaymentResult{}, err
	}

	if invoice.IsSuperseded() {
		return RecordPaymentResult{}, errs.NewValueIsInvalidErrorWithCause("invoiceNumber",
			errors.New("invoice was superseded by a newer invoice"))
	}

	if err = invoice.RegisterPayment(cmd.Amount(), now); err != nil {
		return RecordPaymentResult{}, err
	}

	if err = invoiceRepo.Update(ctx, invoice); err != nil {
		return RecordPaymentResult{}, err
	}

	if invoice.IsFullyPaid() {
		if err = h.confirmOrderPayment(ctx, uow, invoice, cmd.Actor(), now); err != nil {
			return RecordPaymentResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordPaymentResult{}, err
	}

	return RecordPaymentResult{
		InvoiceNumber: invoice.InvoiceNumber(),
		Status:        invoice.Status().String(),
		Paid:          invoice.Paid(),
		Balance:       invoice.Balance(),
		FullyPaid:     invoice.IsFullyPaid(),
	}, nil
}

// confirmOrderPayment walks the owning order from BILLING through
// PAYMENT_PENDING into PAYMENT_CONFIRMED once its invoice is settled.
func (h *RecordPaymentCommandHandler) confirmOrderPayment(
	ctx context.Context,
	uow BillingUoW,
	invoice *billing.Invoice,
	actor string,
	now time.Time,
) error {
	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, invoice.OrderID())
	if err != nil {
		return err
	}

	reason := "invoice " + invoice.InvoiceNumber() + " fully paid"
	changed := false

	if aggregate.Status() == order.Billing {
		if err = aggregate.ChangeStatus(order.PaymentPending, reason, actor, false, now); err != nil {
			return err
		}
		changed = true
	}

	if aggregate.Status() == order.PaymentPending {
		if err = aggregate.ChangeStatus(order.PaymentConfirmed, reason, actor, false, now); err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return nil
	}

	return orderRepo.Update(ctx, aggregate)
}
