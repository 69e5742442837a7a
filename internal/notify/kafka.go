package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"restaurant-service/internal/cart"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier publishes toasts as Event messages. The writer is expected
// to be async, so Notify only enqueues.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafkaNotifier creates a new instance of KafkaNotifier
func NewKafkaNotifier(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, now: time.Now}
}

func (n *KafkaNotifier) Notify(ctx context.Context, kind cart.Kind, message string, opts cart.NotifyOptions) {
	event := Event{
		Kind:     kind,
		Message:  message,
		Position: opts.Position,
		Key:      opts.Key,
		Time:     n.now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling cart notification")
		return
	}

	// cart.success.restaurant-cart:<session> or cart.info.restaurant-cart:<session>
	msg := kafka.Message{
		Key:   []byte(MessageKey(kind, opts.Key)),
		Value: value,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Str("cart", opts.Key).Msg("Error publishing cart notification")
	}
}

func MessageKey(kind cart.Kind, cartKey string) string {
	return fmt.Sprintf("cart.%s.%s", kind, cartKey)
}
