package commands_test

import (
	"testing"
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testRecipient(t *testing.T) order.Recipient {
	t.Helper()

	recipient, err := order.NewRecipient(
		"Somsak J.", "+66812345678", "99 Sukhumvit Rd", "10110", "TH")
	require.NoError(t, err)

	return recipient
}

func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-2026-000123",
		"MBR-001",
		testRecipient(t),
		order.Sea,
		"operator-1",
		time.Now().UTC(),
	)
	require.NoError(t, err)

	dims, err := kernel.NewDimensions(50, 40, 30)
	require.NoError(t, err)
	box, err := order.NewBox(kernel.NewUUID(), "BOX-2026-000123-01", dims, 4.5)
	require.NoError(t, err)
	require.NoError(t, aggregate.AddBox(box))

	if status != order.Received {
		require.NoError(t, aggregate.ChangeStatus(status, "test setup", "admin", true, time.Now().UTC()))
	}

	return aggregate
}

func testUnit(t *testing.T, orderID kernel.UUID, status inventory.UnitStatus, warehouseID *kernel.UUID) *inventory.Unit {
	t.Helper()

	if status == inventory.UnitPending {
		unit, err := inventory.NewUnit(
			kernel.NewUUID(), "INV-2026-000123-01", "BOX-2026-000123-01", orderID, 4.5, 0.06)
		require.NoError(t, err)
		return unit
	}

	now := time.Now().UTC()
	unit, err := inventory.RestoreUnit(
		kernel.NewUUID(),
		"INV-2026-000123-01",
		"BOX-2026-000123-01",
		orderID,
		warehouseID,
		status,
		inventory.UnitUnknown,
		"A-01-03",
		4.5,
		0.06,
		"scanner-1",
		"",
		"",
		&now,
		nil,
		nil,
		1,
	)
	require.NoError(t, err)

	return unit
}

func testInvoice(
	t *testing.T,
	orderID kernel.UUID,
	invoiceNumber string,
	status billing.InvoiceStatus,
	paid float64,
	dueDate *time.Time,
) *billing.Invoice {
	t.Helper()

	now := time.Now().UTC()
	var issuedAt *time.Time
	if status != billing.Draft {
		issuedAt = &now
	}

	invoice, err := billing.RestoreInvoice(
		kernel.NewUUID(),
		invoiceNumber,
		orderID,
		billing.Proforma,
		status,
		"THB",
		billing.Fees{Shipping: 1000},
		paid,
		dueDate,
		issuedAt,
		nil,
		now,
		nil,
	)
	require.NoError(t, err)

	return invoice
}

func testWarehouse(t *testing.T, id kernel.UUID, capacityCBM, occupiedCBM float64) *inventory.Warehouse {
	t.Helper()

	warehouse, err := inventory.RestoreWarehouse(id, "BKK-01", "Bangkok Main", capacityCBM, occupiedCBM)
	require.NoError(t, err)

	return warehouse
}
