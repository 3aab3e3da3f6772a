package commands

import (
	"context"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/model/tracking"
	"lms/internal/core/ports"
)

// UpdateOrderStatusResult summarizes a processed transition.
// Changed is false when the order was already in the requested status,
// which is accepted as a no-op.
type UpdateOrderStatusResult struct {
	OrderNumber    string
	PreviousStatus string
	NewStatus      string
	Stage          int
	Changed        bool
}

// UpdateOrderStatusCommandHandler handles order lifecycle transitions.
// Appends an audit entry for every effective transition and a tracking
// event whenever a milestone status is reached.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.MilestoneNotifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for order transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.MilestoneNotifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
// A request for the current status succeeds without recording anything.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	previous := aggregate.Status()
	if previous == cmd.NewStatus() {
		if err = uow.Commit(ctx); err != nil {
			return UpdateOrderStatusResult{}, err
		}

		return UpdateOrderStatusResult{
			OrderNumber:    aggregate.OrderNumber(),
			PreviousStatus: previous.String(),
			NewStatus:      previous.String(),
			Stage:          previous.Stage(),
			Changed:        false,
		}, nil
	}

	if err = aggregate.ChangeStatus(cmd.NewStatus(), cmd.Reason(), cmd.Actor(), cmd.Corrective(), now); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if cmd.NewStatus().IsMilestone() {
		event, eventErr := tracking.NewEvent(
			kernel.NewUUID(),
			aggregate.ID(),
			cmd.NewStatus().String(),
			cmd.Reason(),
			aggregate.StorageLocation(),
			true,
			now,
		)
		if eventErr != nil {
			return UpdateOrderStatusResult{}, eventErr
		}

		if err = uow.TrackingEventRepository().Add(ctx, event); err != nil {
			return UpdateOrderStatusResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	notifyMilestone(ctx, h.notifier, aggregate, cmd.NewStatus(), cmd.Reason(), now)

	return UpdateOrderStatusResult{
		OrderNumber:    aggregate.OrderNumber(),
		PreviousStatus: previous.String(),
		NewStatus:      aggregate.Status().String(),
		Stage:          aggregate.Status().Stage(),
		Changed:        true,
	}, nil
}

// advanceOrderTowards steps an order forward along the canonical path until
// it reaches the target status, appending one audit entry per hop. Used by
// scan processing, where a physical event implies an order-level move that
// may span several statuses.
func advanceOrderTowards(
	aggregate *order.Order,
	target order.Status,
	reason, actor string,
	now time.Time,
) ([]order.Status, error) {
	path := []order.Status{
		order.Received,
		order.Arrived,
		order.Repacking,
		order.Shipping,
		order.Delivered,
	}

	position := -1
	for i, status := range path {
		if status == aggregate.Status() {
			position = i
		}
	}
	if position < 0 {
		return nil, nil // already past the physical stages
	}

	var applied []order.Status
	for _, status := range path[position+1:] {
		if aggregate.Status().Stage() >= target.Stage() {
			break
		}

		if err := aggregate.ChangeStatus(status, reason, actor, false, now); err != nil {
			return nil, err
		}

		applied = append(applied, status)
	}

	return applied, nil
}
