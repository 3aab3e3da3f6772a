// Package warehouserepo persists physical warehouses and their occupancy.
// Occupancy updates run inside the scan transaction, so capacity checks in
// the domain stay consistent with the stored counters.
package warehouserepo

import (
	"context"
	"errors"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarehouseDTO represents the database structure for persisting warehouses.
type WarehouseDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code           string    `gorm:"uniqueIndex"`
	Name           string
	MaxCapacityCBM float64
	OccupiedCBM    float64
}

// TableName specifies the database table name for warehouses.
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

func fromDomain(warehouse *inventory.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:             warehouse.ID().Bytes(),
		Code:           warehouse.Code(),
		Name:           warehouse.Name(),
		MaxCapacityCBM: warehouse.MaxCapacityCBM(),
		OccupiedCBM:    warehouse.OccupiedCBM(),
	}
}

func toDomain(dto WarehouseDTO) (*inventory.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreWarehouse(id, dto.Code, dto.Name, dto.MaxCapacityCBM, dto.OccupiedCBM)
}

// GormWarehouseRepository implements WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWarehouseRepository creates a new GORM warehouse repository.
func NewGormWarehouseRepository(db *gorm.DB, tracker aggregateTracker) *GormWarehouseRepository {
	return &GormWarehouseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new warehouse.
func (r *GormWarehouseRepository) Add(ctx context.Context, warehouse *inventory.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}

	dto := fromDomain(warehouse)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateResourceErrorWithCause("warehouseCode", warehouse.Code(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(warehouse.ID(), warehouse)
	return nil
}

// Update saves an existing warehouse.
func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *inventory.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}

	dto := fromDomain(warehouse)
	result := r.db.WithContext(ctx).
		Model(&WarehouseDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(warehouse.ID(), warehouse)
	return nil
}

// Get retrieves a warehouse by ID.
func (r *GormWarehouseRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*inventory.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WarehouseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
