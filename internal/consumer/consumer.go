package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"restaurant-service/internal/cart"
	"restaurant-service/internal/notify"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer follows the cart notification topic and records each toast in the
// service log so expirations and table picks are visible to staff.
type Consumer struct {
	reader messageReader
}

// NewConsumer creates a new instance of Consumer
func NewConsumer(reader messageReader) *Consumer {
	return &Consumer{reader: reader}
}

// Run reads until ctx is cancelled, then closes the reader.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		c.processMessage(msg)
	}
}

func (c *Consumer) processMessage(msg kafka.Message) {
	var event notify.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	// key -> "cart.success.<cart key>" or "cart.info.<cart key>"
	parts := strings.SplitN(string(msg.Key), ".", 3)
	if len(parts) != 3 || parts[0] != "cart" {
		log.Warn().Str("key", string(msg.Key)).Msg("Skipping message with unexpected key")
		return
	}

	switch cart.Kind(parts[1]) {
	case cart.KindSuccess:
		log.Info().Str("cart", parts[2]).Time("at", event.Time).Msg(event.Message)
	case cart.KindInfo:
		log.Warn().Str("cart", parts[2]).Time("at", event.Time).Msg(event.Message)
	default:
		log.Error().Msgf("Unknown notification kind: %s", parts[1])
	}
}
