package commands_test

import (
	"context"
	"time"

	"lms/internal/core/application/usecases/commands"
	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/model/tracking"
	"lms/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, u *inventory.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, u *inventory.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Unit), args.Error(1)
}

func (m *MockInventoryRepository) GetByLabelCode(ctx context.Context, labelCode string) (*inventory.Unit, error) {
	args := m.Called(ctx, labelCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Unit), args.Error(1)
}

func (m *MockInventoryRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*inventory.Unit, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Unit), args.Error(1)
}

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) Add(ctx context.Context, w *inventory.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, w *inventory.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

type MockScanEventRepository struct{ mock.Mock }

func (m *MockScanEventRepository) Add(ctx context.Context, e *inventory.ScanEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockScanEventRepository) Exists(
	ctx context.Context, labelCode string, scanType inventory.ScanType,
) (bool, error) {
	args := m.Called(ctx, labelCode, scanType)
	return args.Bool(0), args.Error(1)
}

func (m *MockScanEventRepository) GetAllByLabel(
	ctx context.Context, labelCode string,
) ([]*inventory.ScanEvent, error) {
	args := m.Called(ctx, labelCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.ScanEvent), args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, i *billing.Invoice) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, i *billing.Invoice) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByInvoiceNumber(
	ctx context.Context, invoiceNumber string,
) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*billing.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetAllUnpaidPastDue(
	ctx context.Context, now time.Time,
) ([]*billing.Invoice, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

type MockTrackingEventRepository struct{ mock.Mock }

func (m *MockTrackingEventRepository) Add(ctx context.Context, e *tracking.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockTrackingEventRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*tracking.Event, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Event), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockOrderUoW) TrackingEventRepository() ports.TrackingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingEventRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWarehouseUoW struct{ mock.Mock }

func (m *MockWarehouseUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWarehouseUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWarehouseUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWarehouseUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockWarehouseUoW) WarehouseRepository() ports.WarehouseRepository {
	args := m.Called()
	return args.Get(0).(ports.WarehouseRepository)
}

func (m *MockWarehouseUoW) ScanEventRepository() ports.ScanEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ScanEventRepository)
}

func (m *MockWarehouseUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockWarehouseUoW) TrackingEventRepository() ports.TrackingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingEventRepository)
}

type MockWarehouseUoWFactory struct{ mock.Mock }

func (m *MockWarehouseUoWFactory) Create() commands.WarehouseUoW {
	args := m.Called()
	return args.Get(0).(commands.WarehouseUoW)
}

type MockBillingUoW struct{ mock.Mock }

func (m *MockBillingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillingUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockBillingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockBillingUoW) TrackingEventRepository() ports.TrackingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingEventRepository)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

type MockMilestoneNotifier struct{ mock.Mock }

func (m *MockMilestoneNotifier) NotifyMilestone(
	ctx context.Context, notification ports.MilestoneNotification,
) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
