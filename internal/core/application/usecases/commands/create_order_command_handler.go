package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/model/tracking"
	"lms/internal/core/domain/services"
	"lms/internal/core/ports"
)

// CreateOrderResult summarizes a newly registered order for the caller:
// the allocated order number, the rule-evaluation outcome and any warnings.
type CreateOrderResult struct {
	OrderID                string
	OrderNumber            string
	Status                 string
	ShippingMethod         string
	TotalCBM               float64
	TotalWeight            float64
	TotalDeclaredValue     float64
	RequiresExtraRecipient bool
	NoMemberCode           bool
	Warnings               []services.Warning
	BoxLabels              []string
}

// CreateOrderCommandHandler handles the business logic for order registration.
// Runs the business-rule evaluation over the measured boxes and declared
// items, creates the order in RECEIVED status together with one pending
// inventory unit per box, and records the first tracking event.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	evaluator  services.RuleEvaluator
	notifier   ports.MilestoneNotifier
}

// NewCreateOrderCommandHandler creates a handler for order registration.
// Requires an OrderUoWFactory for transactional persistence and a notifier
// for best-effort milestone publishing.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.MilestoneNotifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		evaluator:  services.NewRuleEvaluator(),
		notifier:   notifier,
	}
}

// Handle processes the order registration command.
// Allocates the order number, evaluates business rules over boxes and items,
// persists the order with its pending inventory units and initial tracking
// event, then publishes the RECEIVED milestone outside the transaction.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orderNumber, err := orderRepo.NextOrderNumber(ctx, now.Year())
	if err != nil {
		return CreateOrderResult{}, err
	}

	boxes, err := buildBoxes(orderNumber, cmd.Boxes())
	if err != nil {
		return CreateOrderResult{}, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return CreateOrderResult{}, err
	}

	evaluation, err := h.evaluator.Evaluate(boxes, items, cmd.MemberCode(), cmd.RequestedMethod())
	if err != nil {
		return CreateOrderResult{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.MemberCode(),
		cmd.Recipient(),
		evaluation.Method,
		cmd.Actor(),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	for _, box := range boxes {
		if err = aggregate.AddBox(box); err != nil {
			return CreateOrderResult{}, err
		}
	}
	for _, item := range items {
		if err = aggregate.AddItem(item); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = aggregate.ApplyEvaluation(
		evaluation.Method,
		evaluation.RequiresExtraRecipient,
		evaluation.NoMemberCode,
	); err != nil {
		return CreateOrderResult{}, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	inventoryRepo := uow.InventoryRepository()
	for _, box := range boxes {
		unit, unitErr := inventory.NewUnit(
			kernel.NewUUID(),
			inventoryCodeForLabel(box.LabelCode()),
			box.LabelCode(),
			aggregate.ID(),
			box.WeightKg(),
			box.CBM(),
		)
		if unitErr != nil {
			return CreateOrderResult{}, unitErr
		}

		if err = inventoryRepo.Add(ctx, unit); err != nil {
			return CreateOrderResult{}, err
		}
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		order.Received.String(),
		"order received and registered",
		"",
		true,
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.TrackingEventRepository().Add(ctx, event); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	notifyMilestone(ctx, h.notifier, aggregate, order.Received, "order received and registered", now)

	labels := make([]string, 0, len(boxes))
	for _, box := range boxes {
		labels = append(labels, box.LabelCode())
	}

	return CreateOrderResult{
		OrderID:                aggregate.ID().String(),
		OrderNumber:            aggregate.OrderNumber(),
		Status:                 aggregate.Status().String(),
		ShippingMethod:         aggregate.ShippingMethod().String(),
		TotalCBM:               evaluation.TotalCBM,
		TotalWeight:            evaluation.TotalWeight,
		TotalDeclaredValue:     evaluation.TotalDeclaredValue,
		RequiresExtraRecipient: evaluation.RequiresExtraRecipient,
		NoMemberCode:           evaluation.NoMemberCode,
		Warnings:               evaluation.Warnings,
		BoxLabels:              labels,
	}, nil
}

// buildBoxes materializes box aggregates from the raw measurements, deriving
// label codes from the order number: ORD-2026-000123 yields boxes labelled
// BOX-2026-000123-01, -02 and so on.
func buildBoxes(orderNumber string, inputs []BoxInput) ([]*order.Box, error) {
	suffix := strings.TrimPrefix(orderNumber, "ORD-")

	boxes := make([]*order.Box, 0, len(inputs))
	for i, input := range inputs {
		dimensions, err := kernel.NewDimensions(input.WidthCm, input.HeightCm, input.DepthCm)
		if err != nil {
			return nil, err
		}

		label := fmt.Sprintf("BOX-%s-%02d", suffix, i+1)
		box, err := order.NewBox(kernel.NewUUID(), label, dimensions, input.WeightKg)
		if err != nil {
			return nil, err
		}

		boxes = append(boxes, box)
	}

	return boxes, nil
}

func buildItems(inputs []ItemInput) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := order.NewItem(
			kernel.NewUUID(),
			input.Description,
			input.Quantity,
			input.UnitValue,
			input.Currency,
			input.HSCode,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// inventoryCodeForLabel derives the warehouse inventory code from a box
// label: BOX-2026-000123-01 becomes INV-2026-000123-01.
func inventoryCodeForLabel(labelCode string) string {
	return "INV-" + strings.TrimPrefix(labelCode, "BOX-")
}

// notifyMilestone publishes a milestone notification after commit.
// Failures are logged and swallowed, the completed transaction stands.
func notifyMilestone(
	ctx context.Context,
	notifier ports.MilestoneNotifier,
	aggregate *order.Order,
	status order.Status,
	description string,
	occurredAt time.Time,
) {
	if notifier == nil || !status.IsMilestone() {
		return
	}

	notification := ports.MilestoneNotification{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      status.String(),
		Description: description,
		OccurredAt:  occurredAt,
	}

	if err := notifier.NotifyMilestone(ctx, notification); err != nil {
		slog.Warn("milestone notification failed",
			"orderNumber", aggregate.OrderNumber(),
			"status", status.String(),
			"error", err,
		)
	}
}
