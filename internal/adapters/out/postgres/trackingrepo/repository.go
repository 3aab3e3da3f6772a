// Package trackingrepo persists customer-facing tracking events. Events are
// append-only; the Seq column captures insertion order for timeline
// tie-breaks.
package trackingrepo

import (
	"context"
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/tracking"
	"lms/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO represents the database structure for persisting tracking events.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Seq         int64     `gorm:"autoIncrement"`
	StatusCode  string
	Description string
	Location    string
	Milestone   bool
	OccurredAt  time.Time
}

// TableName specifies the database table name for tracking events.
func (EventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(event *tracking.Event) EventDTO {
	return EventDTO{
		ID:          event.ID().Bytes(),
		OrderID:     event.OrderID().Bytes(),
		StatusCode:  event.StatusCode(),
		Description: event.Description(),
		Location:    event.Location(),
		Milestone:   event.Milestone(),
		OccurredAt:  event.OccurredAt(),
	}
}

func toDomain(dto EventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return tracking.RestoreEvent(
		id,
		orderID,
		dto.StatusCode,
		dto.Description,
		dto.Location,
		dto.Milestone,
		dto.OccurredAt,
	)
}

// GormTrackingEventRepository implements TrackingEventRepository using GORM.
type GormTrackingEventRepository struct {
	db *gorm.DB
}

// NewGormTrackingEventRepository creates a new GORM tracking event repository.
func NewGormTrackingEventRepository(db *gorm.DB) *GormTrackingEventRepository {
	return &GormTrackingEventRepository{db: db}
}

// Add saves a new tracking event.
func (r *GormTrackingEventRepository) Add(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByOrder retrieves the order's tracking events ordered by event time
// with insertion-order tie-break.
func (r *GormTrackingEventRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*tracking.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at, seq").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	events := make([]*tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, eventErr := toDomain(dto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return events, nil
}
