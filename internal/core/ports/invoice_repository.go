package ports

import (
	"context"
	"time"

	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoice aggregates.
type InvoiceRepository interface {
	// Add persists a new invoice. The invoice number must not already exist.
	Add(ctx context.Context, invoice *billing.Invoice) error

	// Update persists changes to an existing invoice.
	Update(ctx context.Context, invoice *billing.Invoice) error

	// Get retrieves an invoice by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error)

	// GetByInvoiceNumber retrieves an invoice by its business invoice number.
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error)

	// GetAllByOrder retrieves every invoice issued for an order, oldest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*billing.Invoice, error)

	// GetAllUnpaidPastDue retrieves invoices whose due date is before the
	// given moment and that still accept payment. Used by the overdue sweep.
	GetAllUnpaidPastDue(ctx context.Context, now time.Time) ([]*billing.Invoice, error)

	// NextInvoiceNumber allocates the next unique invoice number for the
	// given year, in the form BILL-<year>-<zero-padded sequence>.
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
}
