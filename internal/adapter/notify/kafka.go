package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Producer is the subset of *kafka.Writer used by KafkaNotifier.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds a synchronous writer for the notification topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 5 * time.Second,
	}
}

type notificationEvent struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// KafkaNotifier publishes notifications as JSON events.
type KafkaNotifier struct {
	producer Producer
	now      func() time.Time
}

// NewKafkaNotifier constructs KafkaNotifier.
func NewKafkaNotifier(producer Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, now: time.Now}
}

// Notify implements usecase.Notifier.
func (k *KafkaNotifier) Notify(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(notificationEvent{
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		CreatedAt: k.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	msg := kafka.Message{Key: []byte(n.Type), Value: payload}
	if err := k.producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close releases the underlying producer.
func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}
