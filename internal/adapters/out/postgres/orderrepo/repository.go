package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its boxes, items and audit history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateResourceErrorWithCause(
				"orderNumber", aggregate.OrderNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Boxes and items are upserted; audit
// history is append-only, so existing entries are left untouched and only
// new ones are inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Boxes) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&dto.Boxes).Error; err != nil {
			return err
		}
	}

	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	if len(dto.History) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.History).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its owned children.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getBy(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByOrderNumber retrieves an order by its unique order number.
func (r *GormOrderRepository) GetByOrderNumber(
	ctx context.Context,
	orderNumber string,
) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	return r.getBy(ctx, "order_number = ?", orderNumber, orderNumber)
}

// NextOrderNumber allocates the next order number from a database sequence.
// Numbers are of the form ORD-<year>-<zero-padded sequence>.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context, year int) (string, error) {
	var next int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval('order_number_seq')").
		Scan(&next).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("ORD-%d-%06d", year, next), nil
}

func (r *GormOrderRepository) getBy(
	ctx context.Context,
	condition string,
	value any,
	lookup string,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Boxes").
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		First(&dto, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", lookup)
		}
		return nil, err
	}

	return toDomain(dto)
}
