package commands_test

import (
	"testing"
	"time"

	"lms/internal/core/application/usecases/commands"
	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderBoxesCommandHandler_Handle_RecalculatesOpenInvoice(t *testing.T) {
	ctx := t.Context()
	f := newBillingFixture(ctx)

	aggregate := testOrder(t, order.Arrived)
	dueDate := time.Now().UTC().AddDate(0, 0, 7)
	open := testInvoice(t, aggregate.ID(), "BILL-2026-000020", billing.Issued, 0, &dueDate)
	settled := testInvoice(t, aggregate.ID(), "BILL-2026-000019", billing.FullyPaid, 1070, &dueDate)

	f.orderRepo.On("GetByOrderNumber", ctx, aggregate.OrderNumber()).Return(aggregate, nil).Once()
	f.orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	f.invoiceRepo.On("GetAllByOrder", ctx, aggregate.ID()).
		Return([]*billing.Invoice{settled, open}, nil).Once()
	f.invoiceRepo.On("Update", ctx, open).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewUpdateOrderBoxesCommand(
		aggregate.OrderNumber(),
		[]commands.BoxMeasurement{
			{LabelCode: "BOX-2026-000123-01", WidthCm: 100, HeightCm: 80, DepthCm: 60},
		},
		"operator-1",
	)
	require.NoError(t, err)

	h := commands.NewUpdateOrderBoxesCommandHandler(f.factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 0.48, result.TotalCBM, 1e-9)
	assert.InDelta(t, 4.5, result.TotalWeight, 1e-9)
	assert.Equal(t, "SEA", result.ShippingMethod)
	assert.Equal(t, []string{"BILL-2026-000020"}, result.RecalculatedInvoices)
	// volumetric price 0.48 * 120000 beats 4.5 kg * 8000
	assert.InDelta(t, 57600.0, open.Fees().Shipping, 1e-9)
	assert.InDelta(t, 1000.0, settled.Fees().Shipping, 1e-9)

	f.invoiceRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestUpdateOrderBoxesCommandHandler_Handle_UnknownLabelAborts(t *testing.T) {
	ctx := t.Context()
	f := newBillingFixture(ctx)

	aggregate := testOrder(t, order.Arrived)
	f.orderRepo.On("GetByOrderNumber", ctx, aggregate.OrderNumber()).Return(aggregate, nil).Once()

	cmd, err := commands.NewUpdateOrderBoxesCommand(
		aggregate.OrderNumber(),
		[]commands.BoxMeasurement{
			{LabelCode: "BOX-NOPE", WidthCm: 100, HeightCm: 80, DepthCm: 60},
		},
		"operator-1",
	)
	require.NoError(t, err)

	h := commands.NewUpdateOrderBoxesCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderBoxesCommand_RequiresMeasurements(t *testing.T) {
	_, err := commands.NewUpdateOrderBoxesCommand(
		"ORD-2026-000123", nil, "operator-1")
	require.Error(t, err)
}
