// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work spans one business operation: every mutating
// use case opens a transaction, runs its repository operations inside it and
// either commits everything or nothing.
//
// Aggregates modified during the transaction are tracked, so callers can
// publish notifications for them after a successful commit.
package postgres

import (
	"context"

	"lms/internal/adapters/out/postgres/inventoryrepo"
	"lms/internal/adapters/out/postgres/invoicerepo"
	"lms/internal/adapters/out/postgres/orderrepo"
	"lms/internal/adapters/out/postgres/scanrepo"
	"lms/internal/adapters/out/postgres/trackingrepo"
	"lms/internal/adapters/out/postgres/warehouserepo"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// database connection. Each business operation gets a fresh unit of work
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across all
// repositories. Repository accessors return instances bound to the open
// transaction, or to the main connection when no transaction is active.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a database transaction. Calling Begin while a transaction
// is already open is a no-op, so nested use cases never create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// a successful Commit, Rollback returns gorm.ErrInvalidTransaction, which
// deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// InventoryRepository provides inventory unit persistence within the unit of work.
func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn(), uow)
}

// WarehouseRepository provides warehouse persistence within the unit of work.
func (uow *GormUnitOfWork) WarehouseRepository() ports.WarehouseRepository {
	return warehouserepo.NewGormWarehouseRepository(uow.conn(), uow)
}

// ScanEventRepository provides scan event persistence within the unit of work.
func (uow *GormUnitOfWork) ScanEventRepository() ports.ScanEventRepository {
	return scanrepo.NewGormScanEventRepository(uow.conn())
}

// InvoiceRepository provides invoice persistence within the unit of work.
func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn(), uow)
}

// TrackingEventRepository provides tracking event persistence within the unit of work.
func (uow *GormUnitOfWork) TrackingEventRepository() ports.TrackingEventRepository {
	return trackingrepo.NewGormTrackingEventRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
