// Package kafka publishes milestone notifications to a Kafka topic so that
// downstream consumers (customer notifications, analytics) can react to
// order progress without polling the database.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"lms/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

// MilestoneNotifier implements ports.MilestoneNotifier on top of a Kafka
// writer. Messages are keyed by order number so all milestones of one order
// land on the same partition in order.
type MilestoneNotifier struct {
	writer *kafkago.Writer
}

// NewMilestoneNotifier creates a notifier producing to the given topic.
// Brokers is a comma-separated list of broker addresses.
func NewMilestoneNotifier(brokers, topic string) *MilestoneNotifier {
	return &MilestoneNotifier{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
			Async:        false,
		},
	}
}

// Close flushes pending messages and releases the underlying connections.
func (n *MilestoneNotifier) Close() error {
	return n.writer.Close()
}

type milestoneMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NotifyMilestone publishes a single milestone notification.
func (n *MilestoneNotifier) NotifyMilestone(
	ctx context.Context,
	notification ports.MilestoneNotification,
) error {
	payload, err := json.Marshal(milestoneMessage{
		OrderID:     notification.OrderID,
		OrderNumber: notification.OrderNumber,
		Status:      notification.Status,
		Description: notification.Description,
		OccurredAt:  notification.OccurredAt,
	})
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(notification.OrderNumber),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}

var _ ports.MilestoneNotifier = (*MilestoneNotifier)(nil)
