package commands

import (
	"context"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/services"
)

// UpdateOrderBoxesResult summarizes the recomputation after re-measuring.
type UpdateOrderBoxesResult struct {
	OrderNumber            string
	TotalCBM               float64
	TotalWeight            float64
	ShippingMethod         string
	RequiresExtraRecipient bool
	Warnings               []services.Warning
	RecalculatedInvoices   []string
}

// UpdateOrderBoxesCommandHandler applies corrected box measurements.
// The order's totals, shipping method and compliance flags are fully
// re-evaluated, and any open invoice of the order has its shipping fee
// recomputed from the new volume in the same transaction.
type UpdateOrderBoxesCommandHandler struct {
	uowFactory BillingUoWFactory
	evaluator  services.RuleEvaluator
}

// NewUpdateOrderBoxesCommandHandler creates a handler for box re-measuring.
func NewUpdateOrderBoxesCommandHandler(uowFactory BillingUoWFactory) UpdateOrderBoxesCommandHandler {
	return UpdateOrderBoxesCommandHandler{
		uowFactory: uowFactory,
		evaluator:  services.NewRuleEvaluator(),
	}
}

// Handle applies the measurements to the named boxes, re-runs the business
// rules and synchronously recomputes open invoices. Unknown labels abort
// the whole update.
func (h *UpdateOrderBoxesCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderBoxesCommand,
) (UpdateOrderBoxesResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	for _, measurement := range cmd.Measurements() {
		box, boxErr := aggregate.BoxByLabel(measurement.LabelCode)
		if boxErr != nil {
			return UpdateOrderBoxesResult{}, boxErr
		}

		dimensions, dimErr := kernel.NewDimensions(
			measurement.WidthCm, measurement.HeightCm, measurement.DepthCm)
		if dimErr != nil {
			return UpdateOrderBoxesResult{}, dimErr
		}

		if err = box.SetDimensions(dimensions); err != nil {
			return UpdateOrderBoxesResult{}, err
		}
	}

	// re-running setBoxes over the mutated list refreshes the totals
	if err = aggregate.ReplaceBoxes(aggregate.Boxes()); err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	evaluation, err := h.evaluator.Evaluate(
		aggregate.Boxes(), aggregate.Items(), aggregate.MemberCode(), aggregate.ShippingMethod())
	if err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	if err = aggregate.ApplyEvaluation(
		evaluation.Method,
		evaluation.RequiresExtraRecipient,
		evaluation.NoMemberCode,
	); err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	recalculated, err := h.recalculateOpenInvoices(ctx, uow, aggregate)
	if err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderBoxesResult{}, err
	}

	return UpdateOrderBoxesResult{
		OrderNumber:            aggregate.OrderNumber(),
		TotalCBM:               aggregate.TotalCBM(),
		TotalWeight:            aggregate.TotalWeight(),
		ShippingMethod:         aggregate.ShippingMethod().String(),
		RequiresExtraRecipient: aggregate.RequiresExtraRecipient(),
		Warnings:               evaluation.Warnings,
		RecalculatedInvoices:   recalculated,
	}, nil
}

// recalculateOpenInvoices refreshes the shipping fee of every open invoice
// of the order from the rate card and the new totals. Issued, sent and
// superseded-by-nothing invoices in a fee-mutable state are affected;
// settled and cancelled invoices never change retroactively.
func (h *UpdateOrderBoxesCommandHandler) recalculateOpenInvoices(
	ctx context.Context,
	uow BillingUoW,
	aggregate *order.Order,
) ([]string, error) {
	invoiceRepo := uow.InvoiceRepository()
	invoices, err := invoiceRepo.GetAllByOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	shippingFee := estimateCost(aggregate.TotalCBM(), aggregate.TotalWeight())

	var recalculated []string
	for _, invoice := range invoices {
		if invoice.IsSuperseded() || !isFeeMutable(invoice) {
			continue
		}

		fees := invoice.Fees()
		fees.Shipping = shippingFee

		if err = invoice.UpdateFees(fees); err != nil {
			return nil, err
		}

		if err = invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}

		recalculated = append(recalculated, invoice.InvoiceNumber())
	}

	return recalculated, nil
}

func isFeeMutable(invoice *billing.Invoice) bool {
	return invoice.Status() == billing.Draft || invoice.Status() == billing.Issued
}
