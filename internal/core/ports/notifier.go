package ports

import (
	"context"
	"time"
)

// MilestoneNotification describes an order reaching a customer-visible
// milestone status.
type MilestoneNotification struct {
	OrderID     string
	OrderNumber string
	Status      string
	Description string
	OccurredAt  time.Time
}

// MilestoneNotifier publishes milestone notifications to interested
// consumers. Publishing is best-effort: callers log a returned error and
// carry on, the originating transaction is never affected.
type MilestoneNotifier interface {
	NotifyMilestone(ctx context.Context, notification MilestoneNotification) error
}
