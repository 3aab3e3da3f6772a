// Package inventoryrepo persists inventory units. Units reference their
// order and warehouse by identifier only; concurrent scans against the same
// unit are serialized by an optimistic version check on update.
package inventoryrepo

import (
	"time"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UnitDTO represents the database structure for persisting inventory units.
type UnitDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InventoryCode string     `gorm:"uniqueIndex"`
	LabelCode     string     `gorm:"uniqueIndex"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index"`
	WarehouseID   *uuid.UUID `gorm:"type:uuid;index"`

	Status   int `gorm:"index"`
	HeldFrom int
	Location string

	WeightKg float64
	CBM      float64

	ReceivedBy  string
	InspectedBy string
	ShippedBy   string

	ReceivedAt  *time.Time
	InspectedAt *time.Time
	ShippedAt   *time.Time

	Version int
}

// TableName specifies the database table name for inventory units.
func (UnitDTO) TableName() string {
	return "inventory_units"
}

// fromDomain converts an inventory unit to its database representation.
func fromDomain(unit *inventory.Unit) UnitDTO {
	var warehouseID *uuid.UUID
	if id := unit.WarehouseID(); id != nil {
		raw := id.Bytes()
		warehouseID = &raw
	}

	return UnitDTO{
		ID:            unit.ID().Bytes(),
		InventoryCode: unit.InventoryCode(),
		LabelCode:     unit.LabelCode(),
		OrderID:       unit.OrderID().Bytes(),
		WarehouseID:   warehouseID,
		Status:        int(unit.Status()),
		HeldFrom:      int(unit.HeldFrom()),
		Location:      unit.Location(),
		WeightKg:      unit.WeightKg(),
		CBM:           unit.CBM(),
		ReceivedBy:    unit.ReceivedBy(),
		InspectedBy:   unit.InspectedBy(),
		ShippedBy:     unit.ShippedBy(),
		ReceivedAt:    unit.ReceivedAt(),
		InspectedAt:   unit.InspectedAt(),
		ShippedAt:     unit.ShippedAt(),
		Version:       unit.Version(),
	}
}

// toDomain converts a database DTO to an inventory unit.
func toDomain(dto UnitDTO) (*inventory.Unit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var warehouseID *kernel.UUID
	if dto.WarehouseID != nil {
		wID, wErr := kernel.UUIDFromBytes((*dto.WarehouseID)[:])
		if wErr != nil {
			return nil, wErr
		}
		warehouseID = &wID
	}

	return inventory.RestoreUnit(
		id,
		dto.InventoryCode,
		dto.LabelCode,
		orderID,
		warehouseID,
		inventory.UnitStatus(dto.Status),
		inventory.UnitStatus(dto.HeldFrom),
		dto.Location,
		dto.WeightKg,
		dto.CBM,
		dto.ReceivedBy,
		dto.InspectedBy,
		dto.ShippedBy,
		dto.ReceivedAt,
		dto.InspectedAt,
		dto.ShippedAt,
		dto.Version,
	)
}
