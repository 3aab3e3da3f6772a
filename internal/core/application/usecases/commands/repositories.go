// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"lms/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// WarehouseRepoFactory provides access to the warehouse repository within a transaction.
	WarehouseRepoFactory interface {
		WarehouseRepository() ports.WarehouseRepository
	}

	// ScanEventRepoFactory provides access to the scan event log within a transaction.
	ScanEventRepoFactory interface {
		ScanEventRepository() ports.ScanEventRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// TrackingEventRepoFactory provides access to the tracking event log within a transaction.
	TrackingEventRepoFactory interface {
		TrackingEventRepository() ports.TrackingEventRepository
	}

	// OrderUoW manages transactions for order-centric operations that also
	// append customer-facing tracking events and create inventory units.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		TrackingEventRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WarehouseUoW manages transactions for scan processing, which may touch
	// inventory units, warehouse occupancy, the scan log, the owning order
	// and its tracking timeline in a single transaction.
	WarehouseUoW interface {
		TxManager
		InventoryRepoFactory
		WarehouseRepoFactory
		ScanEventRepoFactory
		OrderRepoFactory
		TrackingEventRepoFactory
	}

	// WarehouseUoWFactory creates new warehouse unit of work instances.
	WarehouseUoWFactory interface {
		Create() WarehouseUoW
	}

	// BillingUoW manages transactions for invoice operations, which may also
	// advance the owning order through its billing statuses.
	BillingUoW interface {
		TxManager
		InvoiceRepoFactory
		OrderRepoFactory
		TrackingEventRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}
)
