// Package scanrepo persists immutable scan events. The (label, scan type)
// pair backs the duplicate-scan detection for non-repeatable scans.
package scanrepo

import (
	"context"
	"errors"
	"time"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ScanEventDTO represents the database structure for persisting scan events.
type ScanEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ScanCode    string    `gorm:"uniqueIndex"`
	LabelCode   string    `gorm:"index:idx_scan_label_type"`
	ScanType    int       `gorm:"index:idx_scan_label_type"`
	WarehouseID *uuid.UUID
	Actor       string
	Location    string
	Note        string
	PhotoURLs   pq.StringArray `gorm:"type:text[]"`
	OccurredAt  time.Time
	Seq         int64 `gorm:"autoIncrement"`
}

// TableName specifies the database table name for scan events.
func (ScanEventDTO) TableName() string {
	return "scan_events"
}

func fromDomain(event *inventory.ScanEvent) ScanEventDTO {
	var warehouseID *uuid.UUID
	if id := event.WarehouseID(); id != nil {
		raw := id.Bytes()
		warehouseID = &raw
	}

	return ScanEventDTO{
		ID:          event.ID().Bytes(),
		ScanCode:    event.ScanCode(),
		LabelCode:   event.LabelCode(),
		ScanType:    int(event.Type()),
		WarehouseID: warehouseID,
		Actor:       event.Actor(),
		Location:    event.Location(),
		Note:        event.Note(),
		PhotoURLs:   pq.StringArray(event.PhotoURLs()),
		OccurredAt:  event.OccurredAt(),
	}
}

func toDomain(dto ScanEventDTO) (*inventory.ScanEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return inventory.RestoreScanEvent(
		id,
		dto.ScanCode,
		dto.LabelCode,
		inventory.ScanType(dto.ScanType),
		warehouseID,
		dto.Actor,
		dto.Location,
		dto.Note,
		[]string(dto.PhotoURLs),
		dto.OccurredAt,
	)
}

// GormScanEventRepository implements ScanEventRepository using GORM.
type GormScanEventRepository struct {
	db *gorm.DB
}

// NewGormScanEventRepository creates a new GORM scan event repository.
func NewGormScanEventRepository(db *gorm.DB) *GormScanEventRepository {
	return &GormScanEventRepository{db: db}
}

// Add saves a new scan event.
func (r *GormScanEventRepository) Add(ctx context.Context, event *inventory.ScanEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateResourceErrorWithCause("scanCode", event.ScanCode(), err)
		}
		return err
	}

	return nil
}

// Exists reports whether a scan of the given type was already recorded for
// the label.
func (r *GormScanEventRepository) Exists(
	ctx context.Context,
	labelCode string,
	scanType inventory.ScanType,
) (bool, error) {
	if labelCode == "" {
		return false, errs.NewValueIsRequiredError("labelCode")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ScanEventDTO{}).
		Where("label_code = ? AND scan_type = ?", labelCode, int(scanType)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllByLabel retrieves the scan history of a label in insertion order.
func (r *GormScanEventRepository) GetAllByLabel(
	ctx context.Context,
	labelCode string,
) ([]*inventory.ScanEvent, error) {
	if labelCode == "" {
		return nil, errs.NewValueIsRequiredError("labelCode")
	}

	var dtos []ScanEventDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&dtos, "label_code = ?", labelCode).Error
	if err != nil {
		return nil, err
	}

	events := make([]*inventory.ScanEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, eventErr := toDomain(dto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return events, nil
}
