package postgres

import (
	"lms/internal/adapters/out/postgres/inventoryrepo"
	"lms/internal/adapters/out/postgres/invoicerepo"
	"lms/internal/adapters/out/postgres/orderrepo"
	"lms/internal/adapters/out/postgres/scanrepo"
	"lms/internal/adapters/out/postgres/trackingrepo"
	"lms/internal/adapters/out/postgres/warehouserepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the database schema for every persistence DTO
// and the sequences backing order and invoice numbering. Used at service
// startup and by the integration test suites.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.BoxDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.AuditEntryDTO{},
		&inventoryrepo.UnitDTO{},
		&warehouserepo.WarehouseDTO{},
		&scanrepo.ScanEventDTO{},
		&invoicerepo.InvoiceDTO{},
		&trackingrepo.EventDTO{},
	); err != nil {
		return err
	}

	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").Error; err != nil {
		return err
	}

	return db.Exec("CREATE SEQUENCE IF NOT EXISTS invoice_number_seq").Error
}
