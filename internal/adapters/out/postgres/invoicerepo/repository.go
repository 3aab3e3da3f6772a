package invoicerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invoice.
func (r *GormInvoiceRepository) Add(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	dto := fromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateResourceErrorWithCause(
				"invoiceNumber", invoice.InvoiceNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(invoice.ID(), invoice)
	return nil
}

// Update saves an existing invoice.
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	dto := fromDomain(invoice)
	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
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

	r.tracker.TrackAggregate(invoice.ID(), invoice)
	return nil
}

// Get retrieves an invoice by ID.
func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getBy(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByInvoiceNumber retrieves an invoice by its unique number.
func (r *GormInvoiceRepository) GetByInvoiceNumber(
	ctx context.Context,
	invoiceNumber string,
) (*billing.Invoice, error) {
	if invoiceNumber == "" {
		return nil, errs.NewValueIsRequiredError("invoiceNumber")
	}

	return r.getBy(ctx, "invoice_number = ?", invoiceNumber, invoiceNumber)
}

// GetAllByOrder retrieves every invoice of the given order, oldest first.
func (r *GormInvoiceRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*billing.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []InvoiceDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllUnpaidPastDue retrieves every non-superseded invoice whose due date
// has passed while it remains unpaid. Used by the overdue sweep job.
func (r *GormInvoiceRepository) GetAllUnpaidPastDue(
	ctx context.Context,
	now time.Time,
) ([]*billing.Invoice, error) {
	var dtos []InvoiceDTO
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status NOT IN (?, ?, ?)",
			int(billing.FullyPaid), int(billing.Cancelled), int(billing.Overdue)).
		Where("superseded_by IS NULL").
		Order("due_date").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// NextInvoiceNumber allocates the next invoice number from a database
// sequence. Numbers are of the form BILL-<year>-<zero-padded sequence>.
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	var next int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval('invoice_number_seq')").
		Scan(&next).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("BILL-%d-%06d", year, next), nil
}

func (r *GormInvoiceRepository) getBy(
	ctx context.Context,
	condition string,
	value any,
	lookup string,
) (*billing.Invoice, error) {
	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, condition, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", lookup)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormInvoiceRepository) toDomainAll(dtos []InvoiceDTO) ([]*billing.Invoice, error) {
	invoices := make([]*billing.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		invoice, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, nil
}
