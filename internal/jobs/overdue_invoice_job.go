package jobs

import (
	"context"
	"log/slog"

	"lms/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OverdueInvoiceJob periodically sweeps unpaid invoices past their due date
// into the OVERDUE status. Runs at the top of every hour.
type OverdueInvoiceJob struct {
	handler commands.SweepOverdueInvoicesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueInvoiceJob creates a new job for flagging overdue invoices.
func NewOverdueInvoiceJob(
	handler commands.SweepOverdueInvoicesCommandHandler,
	logger *slog.Logger,
) *OverdueInvoiceJob {
	return &OverdueInvoiceJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_invoice_job"),
	}
}

// Start begins the overdue invoice sweep to run hourly.
func (j *OverdueInvoiceJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()
		cmd := commands.NewSweepOverdueInvoicesCommand()

		flagged, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Overdue invoice sweep failed", "error", handleErr)
			return
		}

		if flagged > 0 {
			j.logger.InfoContext(ctx, "Flagged overdue invoices", "count", flagged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue invoice job started (running hourly)")
	return nil
}

// Stop stops the overdue invoice job.
func (j *OverdueInvoiceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue invoice job stopped")
}
