package commands

import (
	"context"
	"time"
)

// SweepOverdueInvoicesCommandHandler flags unpaid past-due invoices.
// Invoked by the cron job manager; each run is one transaction.
type SweepOverdueInvoicesCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewSweepOverdueInvoicesCommandHandler creates a handler for the sweep.
func NewSweepOverdueInvoicesCommandHandler(uowFactory BillingUoWFactory) SweepOverdueInvoicesCommandHandler {
	return SweepOverdueInvoicesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks every unpaid invoice whose due date has passed as OVERDUE
// and returns how many invoices were flagged.
func (h *SweepOverdueInvoicesCommandHandler) Handle(
	ctx context.Context,
	cmd SweepOverdueInvoicesCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	invoices, err := invoiceRepo.GetAllUnpaidPastDue(ctx, now)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, invoice := range invoices {
		if !invoice.IsOverdue(now) {
			continue
		}

		if err = invoice.MarkOverdue(now); err != nil {
			return 0, err
		}

		if err = invoiceRepo.Update(ctx, invoice); err != nil {
			return 0, err
		}

		flagged++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return flagged, nil
}
