package cmd

import (
	"lms/internal/adapters/out/postgres"
	"lms/internal/core/application/usecases/commands"
	"lms/internal/core/application/usecases/queries"
	"lms/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.MilestoneNotifier
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.MilestoneNotifier) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) warehouseUoWFactory() commands.WarehouseUoWFactory {
	return FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) billingUoWFactory() commands.BillingUoWFactory {
	return FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderBoxesCommandHandler() commands.UpdateOrderBoxesCommandHandler {
	return commands.NewUpdateOrderBoxesCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateProcessScanCommandHandler() commands.ProcessScanCommandHandler {
	return commands.NewProcessScanCommandHandler(c.warehouseUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateBatchProcessCommandHandler() commands.BatchProcessCommandHandler {
	return commands.NewBatchProcessCommandHandler(c.warehouseUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConsolidateCommandHandler() commands.ConsolidateCommandHandler {
	return commands.NewConsolidateCommandHandler(c.warehouseUoWFactory())
}

func (c *CompositionRoot) CreateIssueInvoiceCommandHandler() commands.IssueInvoiceCommandHandler {
	return commands.NewIssueInvoiceCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateSweepOverdueInvoicesCommandHandler() commands.SweepOverdueInvoicesCommandHandler {
	return commands.NewSweepOverdueInvoicesCommandHandler(c.billingUoWFactory())
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}
