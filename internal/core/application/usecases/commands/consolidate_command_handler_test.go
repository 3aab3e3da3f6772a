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

func TestConsolidateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newScanFixture(ctx)

	aggregate := testOrder(t, order.Arrived)
	warehouseID := kernel.NewUUID()
	warehouse := testWarehouse(t, warehouseID, 100, 10)

	first := testUnit(t, aggregate.ID(), inventory.UnitReceived, &warehouseID)
	second := testUnit(t, aggregate.ID(), inventory.UnitInspected, &warehouseID)

	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-A").Return(first, nil).Once()
	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-B").Return(second, nil).Once()
	f.warehouseRepo.On("Get", ctx, warehouseID).Return(warehouse, nil).Once()
	f.warehouseRepo.On("Update", ctx, warehouse).Return(nil).Once()
	f.inventoryRepo.On("Update", ctx, first).Return(nil).Once()
	f.inventoryRepo.On("Update", ctx, second).Return(nil).Once()
	f.inventoryRepo.On("Add", ctx, mock.AnythingOfType("*inventory.Unit")).Return(nil).Once()
	f.scanRepo.On("Add", ctx, mock.AnythingOfType("*inventory.ScanEvent")).Return(nil).Times(3)
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewConsolidateCommand(
		[]string{"BOX-A", "BOX-B"}, 60, 50, 40, "B-02-01", "combined per customer request", "scanner-1")
	require.NoError(t, err)

	h := commands.NewConsolidateCommandHandler(f.factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, inventory.UnitConsumed, first.Status())
	assert.Equal(t, inventory.UnitConsumed, second.Status())
	assert.InDelta(t, 0.12, result.CBM, 1e-9)     // 60*50*40 cm
	assert.InDelta(t, 9.0, result.WeightKg, 1e-9) // 4.5 + 4.5
	assert.Contains(t, result.LabelCode, "MIX-")
	assert.Equal(t, []string{"BOX-A", "BOX-B"}, result.ConsumedLabels)
	// occupancy: 10 - 0.06 - 0.06 + 0.12 = 10
	assert.InDelta(t, 10.0, warehouse.OccupiedCBM(), 1e-9)

	f.inventoryRepo.AssertExpectations(t)
	f.warehouseRepo.AssertExpectations(t)
	f.scanRepo.AssertExpectations(t)
}

func TestConsolidateCommandHandler_Handle_RejectsNonConsolidatableUnit(t *testing.T) {
	ctx := t.Context()
	f := newScanFixture(ctx)

	aggregate := testOrder(t, order.Arrived)
	warehouseID := kernel.NewUUID()

	first := testUnit(t, aggregate.ID(), inventory.UnitReceived, &warehouseID)
	held := testUnit(t, aggregate.ID(), inventory.UnitHeld, &warehouseID)

	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-A").Return(first, nil).Once()
	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-B").Return(held, nil).Once()

	cmd, err := commands.NewConsolidateCommand(
		[]string{"BOX-A", "BOX-B"}, 60, 50, 40, "", "", "scanner-1")
	require.NoError(t, err)

	h := commands.NewConsolidateCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, inventory.UnitReceived, first.Status())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConsolidateCommandHandler_Handle_RejectsMixedOrders(t *testing.T) {
	ctx := t.Context()
	f := newScanFixture(ctx)

	warehouseID := kernel.NewUUID()
	first := testUnit(t, kernel.NewUUID(), inventory.UnitReceived, &warehouseID)
	second := testUnit(t, kernel.NewUUID(), inventory.UnitReceived, &warehouseID)

	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-A").Return(first, nil).Once()
	f.inventoryRepo.On("GetByLabelCode", ctx, "BOX-B").Return(second, nil).Once()

	cmd, err := commands.NewConsolidateCommand(
		[]string{"BOX-A", "BOX-B"}, 60, 50, 40, "", "", "scanner-1")
	require.NoError(t, err)

	h := commands.NewConsolidateCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestConsolidateCommand_RequiresTwoLabels(t *testing.T) {
	_, err := commands.NewConsolidateCommand(
		[]string{"BOX-A"}, 60, 50, 40, "", "", "scanner-1")
	require.Error(t, err)
}

func TestConsolidateCommand_RejectsDuplicateLabels(t *testing.T) {
	_, err := commands.NewConsolidateCommand(
		[]string{"BOX-A", "BOX-A"}, 60, 50, 40, "", "", "scanner-1")
	require.Error(t, err)
}
