package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"
)

// ConsolidateResult describes the mixbox produced by a consolidation.
type ConsolidateResult struct {
	LabelCode      string
	InventoryCode  string
	CBM            float64
	WeightKg       float64
	ConsumedLabels []string
}

// ConsolidateCommandHandler merges several stored units into one mixbox.
// The whole operation runs in a single transaction: either every source
// unit is consumed and the mixbox created, or nothing changes.
type ConsolidateCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewConsolidateCommandHandler creates a handler for mixbox consolidation.
func NewConsolidateCommandHandler(uowFactory WarehouseUoWFactory) ConsolidateCommandHandler {
	return ConsolidateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle performs the consolidation.
// Every source unit must exist, belong to the same order, sit in the same
// warehouse and be in a consolidatable state; any violation aborts the
// whole operation.
func (h *ConsolidateCommandHandler) Handle(
	ctx context.Context,
	cmd ConsolidateCommand,
) (ConsolidateResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConsolidateResult{}, err
	}

	now := time.Now().UTC()

	dimensions, err := kernel.NewDimensions(cmd.WidthCm(), cmd.HeightCm(), cmd.DepthCm())
	if err != nil {
		return ConsolidateResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ConsolidateResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()

	units := make([]*inventory.Unit, 0, len(cmd.LabelCodes()))
	for _, labelCode := range cmd.LabelCodes() {
		unit, getErr := inventoryRepo.GetByLabelCode(ctx, labelCode)
		if getErr != nil {
			return ConsolidateResult{}, getErr
		}

		if !unit.Status().IsConsolidatable() {
			return ConsolidateResult{}, errs.NewInvalidTransitionError(
				"inventory unit", unit.Status().String(), inventory.UnitConsumed.String())
		}

		units = append(units, unit)
	}

	orderID := units[0].OrderID()
	warehouseID := units[0].WarehouseID()
	if warehouseID == nil {
		return ConsolidateResult{}, errs.NewValueIsInvalidErrorWithCause("labelCodes",
			fmt.Errorf("unit %s is not stored in a warehouse", units[0].LabelCode()))
	}

	var totalWeight float64
	var freedCBM float64
	for _, unit := range units {
		if !unit.OrderID().IsEqual(orderID) {
			return ConsolidateResult{}, errs.NewValueIsInvalidErrorWithCause("labelCodes",
				fmt.Errorf("unit %s belongs to a different order", unit.LabelCode()))
		}
		if unit.WarehouseID() == nil || !unit.WarehouseID().IsEqual(*warehouseID) {
			return ConsolidateResult{}, errs.NewValueIsInvalidErrorWithCause("labelCodes",
				fmt.Errorf("unit %s is stored in a different warehouse", unit.LabelCode()))
		}

		totalWeight += unit.WeightKg()
		freedCBM += unit.CBM()
	}

	mixboxCBM := dimensions.CBM()

	warehouseRepo := uow.WarehouseRepository()
	warehouse, err := warehouseRepo.Get(ctx, *warehouseID)
	if err != nil {
		return ConsolidateResult{}, err
	}

	if err = warehouse.Free(freedCBM); err != nil {
		return ConsolidateResult{}, err
	}
	if err = warehouse.Accept(mixboxCBM); err != nil {
		return ConsolidateResult{}, err
	}
	if err = warehouseRepo.Update(ctx, warehouse); err != nil {
		return ConsolidateResult{}, err
	}

	for _, unit := range units {
		if err = unit.Consume(); err != nil {
			return ConsolidateResult{}, err
		}
		if err = inventoryRepo.Update(ctx, unit); err != nil {
			return ConsolidateResult{}, err
		}
	}

	mixboxID := kernel.NewUUID()
	labelCode := mixboxLabel(mixboxID)

	mixbox, err := inventory.NewUnit(
		mixboxID,
		"INV-"+strings.TrimPrefix(labelCode, "MIX-"),
		labelCode,
		orderID,
		kernel.RoundHalfUp(totalWeight, 3),
		mixboxCBM,
	)
	if err != nil {
		return ConsolidateResult{}, err
	}

	if err = mixbox.Receive(*warehouseID, cmd.Location(), cmd.Actor(), now); err != nil {
		return ConsolidateResult{}, err
	}

	if err = inventoryRepo.Add(ctx, mixbox); err != nil {
		return ConsolidateResult{}, err
	}

	scanRepo := uow.ScanEventRepository()
	scanned := make([]string, 0, len(cmd.LabelCodes())+1)
	scanned = append(scanned, cmd.LabelCodes()...)
	scanned = append(scanned, labelCode)
	for _, scannedLabel := range scanned {
		event, eventErr := inventory.NewScanEvent(
			kernel.NewUUID(),
			fmt.Sprintf("SCN-%s", kernel.NewUUID().String()),
			scannedLabel,
			inventory.ScanMixbox,
			warehouseID,
			cmd.Actor(),
			cmd.Location(),
			cmd.Note(),
			nil,
			now,
		)
		if eventErr != nil {
			return ConsolidateResult{}, eventErr
		}

		if err = scanRepo.Add(ctx, event); err != nil {
			return ConsolidateResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ConsolidateResult{}, err
	}

	return ConsolidateResult{
		LabelCode:      mixbox.LabelCode(),
		InventoryCode:  mixbox.InventoryCode(),
		CBM:            mixbox.CBM(),
		WeightKg:       mixbox.WeightKg(),
		ConsumedLabels: cmd.LabelCodes(),
	}, nil
}

// mixboxLabel derives the mixbox label from its unit identifier, keeping
// the label short enough to print.
func mixboxLabel(id kernel.UUID) string {
	return "MIX-" + strings.ToUpper(id.String()[:8])
}
