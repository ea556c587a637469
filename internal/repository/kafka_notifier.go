package repository

import (
	"context"
	"time"

	"PawMatch/internal/domain/repository"
	"PawMatch/pkg/kafka"
	"PawMatch/pkg/logger"
)

// KafkaNotifier publishes booking events to a single notification topic.
// Messages are keyed by recipient so per-recipient ordering is preserved.
type KafkaNotifier struct {
	producer *kafka.Producer
	topic    string
	logger   *logger.Logger
}

type notificationMessage struct {
	Event       string      `json:"event"`
	RecipientID string      `json:"recipient_id"`
	Payload     interface{} `json:"payload,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewKafkaNotifier wraps a producer for the given topic.
func NewKafkaNotifier(producer *kafka.Producer, topic string, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   log.With("notifier"),
	}
}

// Send publishes one event for a recipient.
func (n *KafkaNotifier) Send(ctx context.Context, event repository.NotificationEvent, recipientID string, payload interface{}) error {
	msg := notificationMessage{
		Event:       string(event),
		RecipientID: recipientID,
		Payload:     payload,
		Timestamp:   time.Now().UTC(),
	}
	if err := n.producer.Publish(ctx, n.topic, []byte(recipientID), msg); err != nil {
		n.logger.Error("publish notification failed",
			logger.String("event", string(event)),
			logger.String("recipient_id", recipientID),
			logger.Error(err))
		return err
	}
	return nil
}

// Close flushes the producer.
func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
