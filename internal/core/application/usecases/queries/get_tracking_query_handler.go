package queries

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler builds the public tracking timeline for an order.
// Audit history and tracking events are merged by event time with
// insertion-order tie-break; milestones present in both sources appear once,
// and stages the order has passed without a recorded event are filled in
// with synthetic entries.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for tracking timeline queries.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// timelineRow is an intermediate merge record carrying the source ordering.
type timelineRow struct {
	entry TimelineEntry
	seq   int
}

// Handle executes the query and returns the assembled timeline.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	var (
		orderID     uuid.UUID
		statusValue int
		createdAt   time.Time
		arrivedAt   *time.Time
		shippedAt   *time.Time
		deliveredAt *time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			created_at,
			arrived_at,
			shipped_at,
			delivered_at
		FROM orders
		WHERE order_number = ?
	`, query.OrderNumber()).Row()

	err := row.Scan(&orderID, &statusValue, &createdAt, &arrivedAt, &shippedAt, &deliveredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderNumber())
		}
		return GetTrackingQueryResponse{}, err
	}

	status := order.Status(statusValue)
	if err = status.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	rows, err := h.loadEventRows(ctx, orderID)
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	rows = h.fillSyntheticStages(rows, status, createdAt, arrivedAt, shippedAt, deliveredAt)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].entry.OccurredAt.Equal(rows[j].entry.OccurredAt) {
			return rows[i].seq < rows[j].seq
		}
		return rows[i].entry.OccurredAt.Before(rows[j].entry.OccurredAt)
	})

	entries := make([]TimelineEntry, 0, len(rows))
	lastUpdated := createdAt
	for _, r := range rows {
		entries = append(entries, r.entry)
		if r.entry.OccurredAt.After(lastUpdated) {
			lastUpdated = r.entry.OccurredAt
		}
	}

	return GetTrackingQueryResponse{
		OrderNumber:   query.OrderNumber(),
		Status:        status.String(),
		LegacyStatus:  status.LegacyAlias(),
		Stage:         status.Stage(),
		LastUpdatedAt: lastUpdated,
		Entries:       entries,
	}, nil
}

// loadEventRows reads tracking events and audit entries for the order and
// merges them into one list. Tracking events win over audit entries that
// describe the same milestone.
func (h GetTrackingQueryHandler) loadEventRows(
	ctx context.Context,
	orderID uuid.UUID,
) ([]timelineRow, error) {
	merged := make([]timelineRow, 0)
	seenMilestones := make(map[string]bool)
	seq := 0

	eventRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status_code,
			description,
			location,
			milestone,
			occurred_at
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY occurred_at, seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var entry TimelineEntry
		if err = eventRows.Scan(
			&entry.StatusCode,
			&entry.Description,
			&entry.Location,
			&entry.Milestone,
			&entry.OccurredAt,
		); err != nil {
			return nil, err
		}

		if entry.Milestone {
			seenMilestones[entry.StatusCode] = true
		}

		merged = append(merged, timelineRow{entry: entry, seq: seq})
		seq++
	}
	if err = eventRows.Err(); err != nil {
		return nil, err
	}

	auditRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			new_status,
			reason,
			occurred_at
		FROM order_audit_entries
		WHERE order_id = ?
		ORDER BY occurred_at, seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer auditRows.Close()

	for auditRows.Next() {
		var (
			newStatusValue int
			reason         string
			occurredAt     time.Time
		)
		if err = auditRows.Scan(&newStatusValue, &reason, &occurredAt); err != nil {
			return nil, err
		}

		newStatus := order.Status(newStatusValue)
		if newStatus.IsMilestone() && seenMilestones[newStatus.String()] {
			continue
		}

		if newStatus.IsMilestone() {
			seenMilestones[newStatus.String()] = true
		}

		merged = append(merged, timelineRow{
			entry: TimelineEntry{
				StatusCode:  newStatus.String(),
				Description: reason,
				Milestone:   newStatus.IsMilestone(),
				OccurredAt:  occurredAt,
			},
			seq: seq,
		})
		seq++
	}
	if err = auditRows.Err(); err != nil {
		return nil, err
	}

	return merged, nil
}

// fillSyntheticStages appends synthetic entries for every lifecycle stage
// the order has passed without a concrete recorded event. Synthetic entries
// are flagged so clients can render them differently.
func (h GetTrackingQueryHandler) fillSyntheticStages(
	rows []timelineRow,
	status order.Status,
	createdAt time.Time,
	arrivedAt, shippedAt, deliveredAt *time.Time,
) []timelineRow {
	currentStage := status.Stage()
	if currentStage < 0 {
		return rows
	}

	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		present[r.entry.StatusCode] = true
	}

	fallback := func(t *time.Time) time.Time {
		if t != nil {
			return *t
		}
		return createdAt
	}

	stages := []struct {
		status     order.Status
		occurredAt time.Time
	}{
		{order.Received, createdAt},
		{order.Arrived, fallback(arrivedAt)},
		{order.Repacking, fallback(arrivedAt)},
		{order.Shipping, fallback(shippedAt)},
		{order.Delivered, fallback(deliveredAt)},
	}

	seq := len(rows)
	for _, stage := range stages {
		if stage.status.Stage() > currentStage {
			break
		}
		if present[stage.status.String()] {
			continue
		}

		rows = append(rows, timelineRow{
			entry: TimelineEntry{
				StatusCode:  stage.status.String(),
				Description: "inferred from current order status",
				Milestone:   stage.status.IsMilestone(),
				Synthetic:   true,
				OccurredAt:  stage.occurredAt,
			},
			seq: seq,
		})
		seq++
	}

	return rows
}
