package inventoryrepo

import (
	"context"
	"errors"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory unit.
func (r *GormInventoryRepository) Add(ctx context.Context, unit *inventory.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateResourceErrorWithCause(
				"inventoryCode", unit.InventoryCode(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

// Update saves an existing unit with an optimistic version check. Two
// concurrent scans of the same label cannot both succeed: the second writer
// finds the version already advanced and gets a ConcurrencyConflictError.
func (r *GormInventoryRepository) Update(ctx context.Context, unit *inventory.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	previousVersion := dto.Version
	dto.Version = previousVersion + 1

	result := r.db.WithContext(ctx).
		Model(&UnitDTO{}).
		Where("id = ? AND version = ?", dto.ID, previousVersion).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("inventory unit", unit.LabelCode())
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

// Get retrieves a unit by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Unit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getBy(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByLabelCode retrieves a unit by its printed label code.
func (r *GormInventoryRepository) GetByLabelCode(
	ctx context.Context,
	labelCode string,
) (*inventory.Unit, error) {
	if labelCode == "" {
		return nil, errs.NewValueIsRequiredError("labelCode")
	}

	return r.getBy(ctx, "label_code = ?", labelCode, labelCode)
}

// GetAllByOrder retrieves every unit belonging to the given order.
func (r *GormInventoryRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*inventory.Unit, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []UnitDTO
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "inventory_code"}}).
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	units := make([]*inventory.Unit, 0, len(dtos))
	for _, dto := range dtos {
		unit, unitErr := toDomain(dto)
		if unitErr != nil {
			return nil, unitErr
		}
		units = append(units, unit)
	}

	return units, nil
}

func (r *GormInventoryRepository) getBy(
	ctx context.Context,
	condition string,
	value any,
	lookup string,
) (*inventory.Unit, error) {
	var dto UnitDTO
	if err := r.db.WithContext(ctx).First(&dto, condition, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory unit", lookup)
		}
		return nil, err
	}

	return toDomain(dto)
}
