// Package invoicerepo persists invoices. Each invoice stores its fee
// schedule; derived amounts are recomputed by the domain on restore so
// monetary fields can never drift from their inputs.
package invoicerepo

import (
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO represents the database structure for persisting invoices.
type InvoiceDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceNumber string    `gorm:"uniqueIndex"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	InvoiceType   int
	Status        int `gorm:"index"`
	Currency      string

	ShippingFee      float64
	LocalDeliveryFee float64
	RepackingFee     float64
	HandlingFee      float64
	InsuranceFee     float64
	CustomsFee       float64

	Paid float64

	DueDate      *time.Time
	IssuedAt     *time.Time
	PaidAt       *time.Time
	CreatedAt    time.Time
	SupersededBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// fromDomain converts an invoice to its database representation.
func fromDomain(invoice *billing.Invoice) InvoiceDTO {
	fees := invoice.Fees()

	var supersededBy *uuid.UUID
	if id := invoice.SupersededBy(); id != nil {
		raw := id.Bytes()
		supersededBy = &raw
	}

	return InvoiceDTO{
		ID:               invoice.ID().Bytes(),
		InvoiceNumber:    invoice.InvoiceNumber(),
		OrderID:          invoice.OrderID().Bytes(),
		InvoiceType:      int(invoice.Type()),
		Status:           int(invoice.Status()),
		Currency:         invoice.Currency(),
		ShippingFee:      fees.Shipping,
		LocalDeliveryFee: fees.LocalDelivery,
		RepackingFee:     fees.Repacking,
		HandlingFee:      fees.Handling,
		InsuranceFee:     fees.Insurance,
		CustomsFee:       fees.Customs,
		Paid:             invoice.Paid(),
		DueDate:          invoice.DueDate(),
		IssuedAt:         invoice.IssuedAt(),
		PaidAt:           invoice.PaidAt(),
		CreatedAt:        invoice.CreatedAt(),
		SupersededBy:     supersededBy,
	}
}

// toDomain converts a database DTO to an invoice.
func toDomain(dto InvoiceDTO) (*billing.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var supersededBy *kernel.UUID
	if dto.SupersededBy != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.SupersededBy)[:])
		if sErr != nil {
			return nil, sErr
		}
		supersededBy = &sID
	}

	return billing.RestoreInvoice(
		id,
		dto.InvoiceNumber,
		orderID,
		billing.InvoiceType(dto.InvoiceType),
		billing.InvoiceStatus(dto.Status),
		dto.Currency,
		billing.Fees{
			Shipping:      dto.ShippingFee,
			LocalDelivery: dto.LocalDeliveryFee,
			Repacking:     dto.RepackingFee,
			Handling:      dto.HandlingFee,
			Insurance:     dto.InsuranceFee,
			Customs:       dto.CustomsFee,
		},
		dto.Paid,
		dto.DueDate,
		dto.IssuedAt,
		dto.PaidAt,
		dto.CreatedAt,
		supersededBy,
	)
}
