// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate owns its boxes, items and audit
// history; all four tables are written together and cascade on delete.
package orderrepo

import (
	"time"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex"`
	MemberCode  string

	Recipient RecipientDTO `gorm:"embedded;embeddedPrefix:recipient_"`

	ShippingMethod int
	Status         int `gorm:"index"`
	Delayed        bool

	RequiresExtraRecipient bool
	NoMemberCode           bool

	TotalCBM           float64
	TotalWeight        float64
	TotalDeclaredValue float64

	StorageLocation string

	CreatedAt   time.Time
	ArrivedAt   *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time

	Boxes   []BoxDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Items   []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []AuditEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// RecipientDTO represents the embedded recipient block within the order table.
type RecipientDTO struct {
	Name       string
	Phone      string
	Address    string
	PostalCode string
	Country    string
}

// BoxDTO represents one physical box owned by an order.
type BoxDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	LabelCode string    `gorm:"uniqueIndex"`
	WidthCm   float64
	HeightCm  float64
	DepthCm   float64
	WeightKg  float64
}

// TableName specifies the database table name for box rows.
func (BoxDTO) TableName() string {
	return "order_boxes"
}

// ItemDTO represents one declared item owned by an order.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Description string
	Quantity    int
	UnitValue   float64
	Currency    string
	HSCode      string
}

// TableName specifies the database table name for item rows.
func (ItemDTO) TableName() string {
	return "order_items"
}

// AuditEntryDTO represents one append-only status-change record. The Seq
// column provides the insertion-order tie-break for the tracking timeline.
type AuditEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Seq            int64     `gorm:"autoIncrement"`
	PreviousStatus int
	NewStatus      int
	Reason         string
	Actor          string
	OccurredAt     time.Time
}

// TableName specifies the database table name for audit rows.
func (AuditEntryDTO) TableName() string {
	return "order_audit_entries"
}

// fromDomain converts an order domain aggregate to its database
// representation, including all owned children.
func fromDomain(aggregate *order.Order) OrderDTO {
	recipient := aggregate.Recipient()

	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		MemberCode:  aggregate.MemberCode(),
		Recipient: RecipientDTO{
			Name:       recipient.Name(),
			Phone:      recipient.Phone(),
			Address:    recipient.Address(),
			PostalCode: recipient.PostalCode(),
			Country:    recipient.Country(),
		},
		ShippingMethod:         int(aggregate.ShippingMethod()),
		Status:                 int(aggregate.Status()),
		Delayed:                aggregate.Delayed(),
		RequiresExtraRecipient: aggregate.RequiresExtraRecipient(),
		NoMemberCode:           aggregate.NoMemberCode(),
		TotalCBM:               aggregate.TotalCBM(),
		TotalWeight:            aggregate.TotalWeight(),
		TotalDeclaredValue:     aggregate.TotalDeclaredValue(),
		StorageLocation:        aggregate.StorageLocation(),
		CreatedAt:              aggregate.CreatedAt(),
		ArrivedAt:              aggregate.ArrivedAt(),
		ShippedAt:              aggregate.ShippedAt(),
		DeliveredAt:            aggregate.DeliveredAt(),
	}

	for _, box := range aggregate.Boxes() {
		dimensions := box.Dimensions()
		dto.Boxes = append(dto.Boxes, BoxDTO{
			ID:        box.ID().Bytes(),
			OrderID:   dto.ID,
			LabelCode: box.LabelCode(),
			WidthCm:   dimensions.WidthCm(),
			HeightCm:  dimensions.HeightCm(),
			DepthCm:   dimensions.DepthCm(),
			WeightKg:  box.WeightKg(),
		})
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     dto.ID,
			Description: item.Description(),
			Quantity:    item.Quantity(),
			UnitValue:   item.UnitValue(),
			Currency:    item.Currency(),
			HSCode:      item.HSCode(),
		})
	}

	for _, entry := range aggregate.History() {
		dto.History = append(dto.History, AuditEntryDTO{
			ID:             entry.ID().Bytes(),
			OrderID:        dto.ID,
			PreviousStatus: int(entry.PreviousStatus()),
			NewStatus:      int(entry.NewStatus()),
			Reason:         entry.Reason(),
			Actor:          entry.Actor(),
			OccurredAt:     entry.OccurredAt(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate. Totals are
// recomputed by RestoreOrder from the restored boxes.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipient, err := order.NewRecipient(
		dto.Recipient.Name,
		dto.Recipient.Phone,
		dto.Recipient.Address,
		dto.Recipient.PostalCode,
		dto.Recipient.Country,
	)
	if err != nil {
		return nil, err
	}

	boxes := make([]*order.Box, 0, len(dto.Boxes))
	for _, boxDTO := range dto.Boxes {
		box, boxErr := boxToDomain(boxDTO)
		if boxErr != nil {
			return nil, boxErr
		}
		boxes = append(boxes, box)
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreItem(
			itemID,
			itemDTO.Description,
			itemDTO.Quantity,
			itemDTO.UnitValue,
			itemDTO.Currency,
			itemDTO.HSCode,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]*order.AuditEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		entryID, entryErr := kernel.UUIDFromBytes(entryDTO.ID[:])
		if entryErr != nil {
			return nil, entryErr
		}

		entry, entryErr := order.RestoreAuditEntry(
			entryID,
			order.Status(entryDTO.PreviousStatus),
			order.Status(entryDTO.NewStatus),
			entryDTO.Reason,
			entryDTO.Actor,
			entryDTO.OccurredAt,
		)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.MemberCode,
		recipient,
		order.Method(dto.ShippingMethod),
		order.Status(dto.Status),
		dto.Delayed,
		dto.RequiresExtraRecipient,
		dto.NoMemberCode,
		dto.StorageLocation,
		dto.CreatedAt,
		dto.ArrivedAt,
		dto.ShippedAt,
		dto.DeliveredAt,
		boxes,
		items,
		history,
	)
}

func boxToDomain(dto BoxDTO) (*order.Box, error) {
	boxID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dimensions, err := kernel.NewDimensions(dto.WidthCm, dto.HeightCm, dto.DepthCm)
	if err != nil {
		return nil, err
	}

	return order.RestoreBox(boxID, dto.LabelCode, dimensions, dto.WeightKg)
}
