package commands_test

import (
	"errors"
	"testing"

	"lms/internal/core/application/usecases/commands"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, boxes []commands.BoxInput, items []commands.ItemInput) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		"MBR-001",
		testRecipient(t),
		order.Sea,
		boxes,
		items,
		"operator-1",
	)
	require.NoError(t, err)

	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		[]commands.BoxInput{{WidthCm: 50, HeightCm: 40, DepthCm: 30, WeightKg: 4.5}},
		[]commands.ItemInput{{Description: "headphones", Quantity: 2, UnitValue: 350, Currency: "THB"}},
	)

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	trackingRepo := new(MockTrackingEventRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("TrackingEventRepository").Return(trackingRepo)
	orderRepo.On("NextOrderNumber", ctx, mock.AnythingOfType("int")).Return("ORD-2026-000042", nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	inventoryRepo.On("Add", ctx, mock.AnythingOfType("*inventory.Unit")).Return(nil).Once()
	trackingRepo.On("Add", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockMilestoneNotifier)
	notifier.On("NotifyMilestone", ctx, mock.AnythingOfType("ports.MilestoneNotification")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-000042", result.OrderNumber)
	assert.Equal(t, "RECEIVED", result.Status)
	assert.Equal(t, "SEA", result.ShippingMethod)
	assert.InDelta(t, 0.06, result.TotalCBM, 1e-9)
	assert.InDelta(t, 700.0, result.TotalDeclaredValue, 1e-9)
	assert.False(t, result.RequiresExtraRecipient)
	assert.Equal(t, []string{"BOX-2026-000042-01"}, result.BoxLabels)

	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ForcesAirAboveThreshold(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		[]commands.BoxInput{{WidthCm: 1000, HeightCm: 305, DepthCm: 100, WeightKg: 800}},
		nil,
	)

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	trackingRepo := new(MockTrackingEventRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("TrackingEventRepository").Return(trackingRepo)
	orderRepo.On("NextOrderNumber", ctx, mock.AnythingOfType("int")).Return("ORD-2026-000043", nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	inventoryRepo.On("Add", ctx, mock.AnythingOfType("*inventory.Unit")).Return(nil).Once()
	trackingRepo.On("Add", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, nil)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "AIR", result.ShippingMethod)
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "CBM_EXCEEDED", result.Warnings[0].Code)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, nil)

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		[]commands.BoxInput{{WidthCm: 50, HeightCm: 40, DepthCm: 30, WeightKg: 4.5}},
		nil,
	)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("NextOrderNumber", ctx, mock.AnythingOfType("int")).Return("ORD-2026-000044", nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockMilestoneNotifier)

	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	notifier.AssertNotCalled(t, "NotifyMilestone", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommand_RequiresBoxes(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		"MBR-001",
		testRecipient(t),
		order.Sea,
		nil,
		nil,
		"operator-1",
	)
	require.Error(t, err)
}

var _ ports.MilestoneNotifier = (*MockMilestoneNotifier)(nil)
