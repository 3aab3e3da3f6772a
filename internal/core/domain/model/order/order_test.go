package order_test

import (
	"testing"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecipient(t *testing.T) order.Recipient {
	t.Helper()
	recipient, err := order.NewRecipient("Somchai Jaidee", "+66812345678", "123 Sukhumvit Rd, Bangkok", "10110", "TH")
	require.NoError(t, err)
	return recipient
}

func mustOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-2026-000001", "MBR-100", mustRecipient(t),
		order.Sea, "user-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func mustBox(t *testing.T, label string, w, h, d, weight float64) *order.Box {
	t.Helper()
	dims, err := kernel.NewDimensions(w, h, d)
	require.NoError(t, err)
	box, err := order.NewBox(kernel.NewUUID(), label, dims, weight)
	require.NoError(t, err)
	return box
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in received status with creation audit entry", func(t *testing.T) {
		o := mustOrder(t)

		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, "ORD-2026-000001", o.OrderNumber())
		assert.Equal(t, order.Sea, o.ShippingMethod())
		assert.False(t, o.NoMemberCode())
		assert.False(t, o.Delayed())
		assert.Empty(t, o.Boxes())

		require.Len(t, o.History(), 1)
		entry := o.History()[0]
		assert.Equal(t, order.Unknown, entry.PreviousStatus())
		assert.Equal(t, order.Received, entry.NewStatus())
		assert.Equal(t, "user-1", entry.Actor())
	})

	t.Run("missing member code seeds the compliance flag", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-2026-000002", "", mustRecipient(t),
			order.Sea, "user-1", time.Now())

		require.NoError(t, err)
		assert.True(t, o.NoMemberCode())
	})

	t.Run("rejects missing order number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", "MBR-100", mustRecipient(t),
			order.Sea, "user-1", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed recipient", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-2026-000003", "MBR-100", order.Recipient{},
			order.Sea, "user-1", time.Now())

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.Error(t, o.Validate())
	})
}

func TestOrderBoxes(t *testing.T) {
	t.Run("adding boxes recomputes totals", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.AddBox(mustBox(t, "BOX-001-01", 100, 100, 50, 12.5)))
		require.NoError(t, o.AddBox(mustBox(t, "BOX-001-02", 50, 40, 30, 7.5)))

		assert.InDelta(t, 0.56, o.TotalCBM(), 1e-9)
		assert.InDelta(t, 20.0, o.TotalWeight(), 1e-9)
	})

	t.Run("duplicate label code is rejected", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.AddBox(mustBox(t, "BOX-001-01", 100, 100, 50, 12.5)))

		err := o.AddBox(mustBox(t, "BOX-001-01", 50, 40, 30, 7.5))
		require.ErrorIs(t, err, errs.ErrDuplicateResource)
		assert.Len(t, o.Boxes(), 1)
	})

	t.Run("replacing boxes recomputes totals", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.AddBox(mustBox(t, "BOX-001-01", 100, 100, 50, 12.5)))

		err := o.ReplaceBoxes([]*order.Box{
			mustBox(t, "BOX-001-03", 30, 30, 30, 3),
			mustBox(t, "BOX-001-04", 30, 30, 30, 3),
		})

		require.NoError(t, err)
		assert.InDelta(t, 0.054, o.TotalCBM(), 1e-9)
		assert.InDelta(t, 6.0, o.TotalWeight(), 1e-9)
	})

	t.Run("changing box dimensions recomputes box cbm", func(t *testing.T) {
		box := mustBox(t, "BOX-001-01", 100, 100, 50, 12.5)
		assert.InDelta(t, 0.5, box.CBM(), 1e-9)

		dims, err := kernel.NewDimensions(100, 100, 100)
		require.NoError(t, err)
		require.NoError(t, box.SetDimensions(dims))

		assert.InDelta(t, 1.0, box.CBM(), 1e-9)
	})

	t.Run("box lookup by label", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.AddBox(mustBox(t, "BOX-001-01", 100, 100, 50, 12.5)))

		box, err := o.BoxByLabel("BOX-001-01")
		require.NoError(t, err)
		assert.Equal(t, "BOX-001-01", box.LabelCode())

		_, err = o.BoxByLabel("BOX-999-99")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderItems(t *testing.T) {
	t.Run("total declared value sums item values", func(t *testing.T) {
		o := mustOrder(t)

		item1, err := order.NewItem(kernel.NewUUID(), "Ceramic bowls", 4, 250.50, "THB", "6912.00")
		require.NoError(t, err)
		item2, err := order.NewItem(kernel.NewUUID(), "Cotton shirts", 2, 99.99, "THB", "")
		require.NoError(t, err)

		require.NoError(t, o.AddItem(item1))
		require.NoError(t, o.AddItem(item2))

		assert.InDelta(t, 1201.98, o.TotalDeclaredValue(), 1e-9)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Ceramic bowls", 0, 250.50, "THB", "")
		require.Error(t, err)
	})
}

func TestOrderChangeStatus(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("valid transition appends audit entry", func(t *testing.T) {
		o := mustOrder(t)

		err := o.ChangeStatus(order.Arrived, "goods scanned at warehouse", "wh-operator", false, now)

		require.NoError(t, err)
		assert.Equal(t, order.Arrived, o.Status())
		require.Len(t, o.History(), 2)

		entry := o.History()[1]
		assert.Equal(t, order.Received, entry.PreviousStatus())
		assert.Equal(t, order.Arrived, entry.NewStatus())
		assert.Equal(t, "wh-operator", entry.Actor())
		require.NotNil(t, o.ArrivedAt())
		assert.Equal(t, now, *o.ArrivedAt())
	})

	t.Run("same status is a no-op without audit entry", func(t *testing.T) {
		o := mustOrder(t)

		err := o.ChangeStatus(order.Received, "again", "user-1", false, now)

		require.NoError(t, err)
		assert.Len(t, o.History(), 1)
	})

	t.Run("illegal transition is rejected without state change", func(t *testing.T) {
		o := mustOrder(t)

		err := o.ChangeStatus(order.Delivered, "skip ahead", "user-1", false, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Received, o.Status())
		assert.Len(t, o.History(), 1)
	})

	t.Run("corrective transition allows backward move with audit entry", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.ChangeStatus(order.Arrived, "", "wh-operator", false, now))

		err := o.ChangeStatus(order.Received, "scan error correction", "admin-1", true, now.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.Received, o.Status())
		require.Len(t, o.History(), 3)
		assert.Equal(t, "scan error correction", o.History()[2].Reason())
	})

	t.Run("milestone timestamps are set on first entry only", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.ChangeStatus(order.Arrived, "", "op", false, now))
		first := *o.ArrivedAt()

		require.NoError(t, o.ChangeStatus(order.Received, "correction", "admin", true, now.Add(time.Hour)))
		require.NoError(t, o.ChangeStatus(order.Arrived, "", "op", false, now.Add(2*time.Hour)))

		assert.Equal(t, first, *o.ArrivedAt())
	})

	t.Run("cancellation from mid-lifecycle", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.ChangeStatus(order.Arrived, "", "op", false, now))
		require.NoError(t, o.ChangeStatus(order.Cancelled, "customer request", "user-1", false, now))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.True(t, o.Status().IsTerminal())
	})
}

func TestOrderApplyEvaluation(t *testing.T) {
	o := mustOrder(t)

	require.NoError(t, o.ApplyEvaluation(order.Air, true, false))

	assert.Equal(t, order.Air, o.ShippingMethod())
	assert.True(t, o.RequiresExtraRecipient())
	assert.False(t, o.NoMemberCode())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full aggregate and recomputes totals", func(t *testing.T) {
		id := kernel.NewUUID()
		createdAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
		arrivedAt := createdAt.Add(48 * time.Hour)

		boxes := []*order.Box{mustBox(t, "BOX-010-01", 100, 100, 50, 10)}
		entry, err := order.NewAuditEntry(
			kernel.NewUUID(), order.Unknown, order.Received, "order received", "user-1", createdAt)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			id, "ORD-2026-000010", "MBR-100", mustRecipient(t),
			order.Sea, order.Arrived, false, false, false,
			"A-12-3", createdAt, &arrivedAt, nil, nil,
			boxes, nil, []*order.AuditEntry{entry})

		require.NoError(t, err)
		assert.Equal(t, order.Arrived, o.Status())
		assert.Equal(t, "A-12-3", o.StorageLocation())
		assert.InDelta(t, 0.5, o.TotalCBM(), 1e-9)
		assert.InDelta(t, 10.0, o.TotalWeight(), 1e-9)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2026-000011", "", mustRecipient(t),
			order.Sea, order.Unknown, false, false, false,
			"", time.Now(), nil, nil, nil, nil, nil, nil)

		require.Error(t, err)
	})
}
