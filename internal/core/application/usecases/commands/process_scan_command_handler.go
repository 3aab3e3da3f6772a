package commands

import (
	"context"
	"fmt"
	"time"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/model/tracking"
	"lms/internal/core/ports"
	"lms/internal/pkg/errs"
)

// ProcessScanResult summarizes the outcome of a single scan: the unit's
// state after the scan, the owning order's state, and the action the
// operator should perform next.
type ProcessScanResult struct {
	ScanCode    string
	LabelCode   string
	UnitStatus  string
	OrderNumber string
	OrderStatus string
	NextAction  string
}

// ProcessScanCommandHandler executes warehouse scans against inventory
// units. A scan may update the unit, the warehouse occupancy, the owning
// order and its tracking timeline in one transaction, and always appends
// to the scan log.
type ProcessScanCommandHandler struct {
	uowFactory WarehouseUoWFactory
	notifier   ports.MilestoneNotifier
}

// NewProcessScanCommandHandler creates a handler for warehouse scans.
func NewProcessScanCommandHandler(
	uowFactory WarehouseUoWFactory,
	notifier ports.MilestoneNotifier,
) ProcessScanCommandHandler {
	return ProcessScanCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes one scan.
// Non-repeatable scan types are checked against the scan log first: a
// second inbound scan of the same label is a duplicate, not a transition
// error. Hold, release and inventory scans may be repeated freely.
func (h *ProcessScanCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessScanCommand,
) (ProcessScanResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessScanResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessScanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()
	unit, err := inventoryRepo.GetByLabelCode(ctx, cmd.LabelCode())
	if err != nil {
		return ProcessScanResult{}, err
	}

	scanRepo := uow.ScanEventRepository()
	if !cmd.ScanType().IsRepeatable() {
		exists, existsErr := scanRepo.Exists(ctx, cmd.LabelCode(), cmd.ScanType())
		if existsErr != nil {
			return ProcessScanResult{}, existsErr
		}
		if exists {
			return ProcessScanResult{}, errs.NewDuplicateResourceError(
				"scan", fmt.Sprintf("%s %s", cmd.ScanType(), cmd.LabelCode()))
		}
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, unit.OrderID())
	if err != nil {
		return ProcessScanResult{}, err
	}

	milestones, err := h.applyScan(ctx, uow, cmd, unit, aggregate, now)
	if err != nil {
		return ProcessScanResult{}, err
	}

	if cmd.ScanType() != inventory.ScanInventory {
		if err = inventoryRepo.Update(ctx, unit); err != nil {
			return ProcessScanResult{}, err
		}
	}

	scanCode := fmt.Sprintf("SCN-%s", kernel.NewUUID().String())
	event, err := inventory.NewScanEvent(
		kernel.NewUUID(),
		scanCode,
		cmd.LabelCode(),
		cmd.ScanType(),
		cmd.WarehouseID(),
		cmd.Actor(),
		cmd.Location(),
		cmd.Note(),
		cmd.PhotoURLs(),
		now,
	)
	if err != nil {
		return ProcessScanResult{}, err
	}

	if err = scanRepo.Add(ctx, event); err != nil {
		return ProcessScanResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProcessScanResult{}, err
	}

	for _, milestone := range milestones {
		notifyMilestone(ctx, h.notifier, aggregate, milestone,
			fmt.Sprintf("%s scan for %s", cmd.ScanType(), cmd.LabelCode()), now)
	}

	return ProcessScanResult{
		ScanCode:    scanCode,
		LabelCode:   unit.LabelCode(),
		UnitStatus:  unit.Status().String(),
		OrderNumber: aggregate.OrderNumber(),
		OrderStatus: aggregate.Status().String(),
		NextAction:  unit.Status().NextAction(),
	}, nil
}

// applyScan mutates the unit (and possibly warehouse and order) according
// to the scan type and returns the milestone statuses the order crossed.
func (h *ProcessScanCommandHandler) applyScan(
	ctx context.Context,
	uow WarehouseUoW,
	cmd ProcessScanCommand,
	unit *inventory.Unit,
	aggregate *order.Order,
	now time.Time,
) ([]order.Status, error) {
	reason := fmt.Sprintf("%s scan for %s", cmd.ScanType(), cmd.LabelCode())

	switch cmd.ScanType() {
	case inventory.ScanInbound:
		warehouseRepo := uow.WarehouseRepository()
		warehouse, err := warehouseRepo.Get(ctx, *cmd.WarehouseID())
		if err != nil {
			return nil, err
		}

		if err = warehouse.Accept(unit.CBM()); err != nil {
			return nil, err
		}

		if err = unit.Receive(*cmd.WarehouseID(), cmd.Location(), cmd.Actor(), now); err != nil {
			return nil, err
		}

		if err = warehouseRepo.Update(ctx, warehouse); err != nil {
			return nil, err
		}

		return h.advanceOrder(ctx, uow, aggregate, order.Arrived, reason, cmd.Actor(), now)

	case inventory.ScanInspect:
		return nil, unit.Inspect(cmd.Actor(), now)

	case inventory.ScanReady:
		return nil, unit.MarkReadyToShip()

	case inventory.ScanOutbound:
		if err := unit.Ship(cmd.Actor(), now); err != nil {
			return nil, err
		}

		if warehouseID := unit.WarehouseID(); warehouseID != nil {
			warehouseRepo := uow.WarehouseRepository()
			warehouse, err := warehouseRepo.Get(ctx, *warehouseID)
			if err != nil {
				return nil, err
			}

			if err = warehouse.Free(unit.CBM()); err != nil {
				return nil, err
			}

			if err = warehouseRepo.Update(ctx, warehouse); err != nil {
				return nil, err
			}
		}

		shipped, err := h.allUnitsShipped(ctx, uow, unit)
		if err != nil {
			return nil, err
		}
		if !shipped {
			return nil, nil
		}

		return h.advanceOrder(ctx, uow, aggregate, order.Shipping, reason, cmd.Actor(), now)

	case inventory.ScanHold:
		return nil, unit.Hold()

	case inventory.ScanRelease:
		return nil, unit.Release()

	case inventory.ScanInventory:
		return nil, nil // audit scan, log only

	default:
		return nil, errs.NewValueIsInvalidError("scanType")
	}
}

// advanceOrder steps the order forward to the target status, persists it
// and appends tracking events for every milestone crossed.
func (h *ProcessScanCommandHandler) advanceOrder(
	ctx context.Context,
	uow WarehouseUoW,
	aggregate *order.Order,
	target order.Status,
	reason, actor string,
	now time.Time,
) ([]order.Status, error) {
	applied, err := advanceOrderTowards(aggregate, target, reason, actor, now)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, nil
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	trackingRepo := uow.TrackingEventRepository()
	var milestones []order.Status
	for _, status := range applied {
		if !status.IsMilestone() {
			continue
		}

		event, eventErr := tracking.NewEvent(
			kernel.NewUUID(),
			aggregate.ID(),
			status.String(),
			reason,
			aggregate.StorageLocation(),
			true,
			now,
		)
		if eventErr != nil {
			return nil, eventErr
		}

		if err = trackingRepo.Add(ctx, event); err != nil {
			return nil, err
		}

		milestones = append(milestones, status)
	}

	return milestones, nil
}

// allUnitsShipped reports whether every inventory unit of the order has
// reached a terminal shipped or consumed state. The unit being scanned is
// judged by its in-memory state, since it is not persisted yet.
func (h *ProcessScanCommandHandler) allUnitsShipped(
	ctx context.Context,
	uow WarehouseUoW,
	current *inventory.Unit,
) (bool, error) {
	units, err := uow.InventoryRepository().GetAllByOrder(ctx, current.OrderID())
	if err != nil {
		return false, err
	}

	for _, unit := range units {
		status := unit.Status()
		if unit.ID().IsEqual(current.ID()) {
			status = current.Status()
		}

		if !status.IsTerminal() {
			return false, nil
		}
	}

	return true, nil
}
