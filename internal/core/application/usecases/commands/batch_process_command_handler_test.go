package commands_test

import (
	"testing"

	"lms/internal/core/application/usecases/commands"
	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessCommandHandler_Handle_MixedOutcome(t *testing.T) {
	ctx := t.Context()
	f := newScanFixture(ctx)

	aggregate := testOrder(t, order.Arrived)
	warehouseID := kernel.NewUUID()

	goodLabels := []string{"BOX-2026-000200-01", "BOX-2026-000200-02"}
	units := make(map[string]*inventory.Unit, len(goodLabels))
	for _, label := range goodLabels {
		unit := testUnit(t, aggregate.ID(), inventory.UnitReceived, &warehouseID)
		units[label] = unit
		f.inventoryRepo.On("GetByLabelCode", ctx, label).Return(unit, nil)
		f.inventoryRepo.On("Update", ctx, unit).Return(nil)
	}
	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-UNKNOWN").
		Return(nil, errs.NewObjectNotFoundError("labelCode", "BOX-UNKNOWN"))

	f.orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	f.scanRepo.On("Add", ctx, mock.AnythingOfType("*inventory.ScanEvent")).Return(nil)
	f.uow.On("Commit", ctx).Return(nil)

	cmd, err := commands.NewBatchProcessCommand(
		inventory.ScanHold,
		[]string{goodLabels[0], "BOX-UNKNOWN", goodLabels[1]},
		nil,
		"",
		"scanner-1",
	)
	require.NoError(t, err)

	h := commands.NewBatchProcessCommandHandler(f.factory, nil)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "success", result.Items[0].Status)
	assert.Equal(t, "failed", result.Items[1].Status)
	assert.NotEmpty(t, result.Items[1].Reason)
	assert.Equal(t, "success", result.Items[2].Status)

	// two units of 0.06 m3 and 4.5 kg each
	assert.InDelta(t, 0.12, result.TotalCBM, 1e-9)
	assert.InDelta(t, 9.0, result.TotalWeight, 1e-9)
	// weight price 9*8000 = 72000 beats volume price 0.12*120000 = 14400
	assert.InDelta(t, 72000.0, result.EstimatedCost, 1e-9)
}

func TestBatchProcessCommandHandler_Handle_RequiresLabels(t *testing.T) {
	_, err := commands.NewBatchProcessCommand(
		inventory.ScanHold, nil, nil, "", "scanner-1")

	require.Error(t, err)
}
