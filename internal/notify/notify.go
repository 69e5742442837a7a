package notify

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"restaurant-service/internal/cart"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Event is the wire form of a cart toast.
type Event struct {
	Kind     cart.Kind `json:"kind"`
	Message  string    `json:"message"`
	Position string    `json:"position"`
	Key      string    `json:"key,omitempty"`
	Time     time.Time `json:"time"`
}

// LogNotifier writes every toast to zerolog.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier writing to l.
func NewLogNotifier(l zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(_ context.Context, kind cart.Kind, message string, opts cart.NotifyOptions) {
	n.logger.Info().
		Str("kind", string(kind)).
		Str("position", opts.Position).
		Str("cart", opts.Key).
		Msg(message)
}

// Multi fans a toast out to every notifier in order.
type Multi []cart.Notifier

func (m Multi) Notify(ctx context.Context, kind cart.Kind, message string, opts cart.NotifyOptions) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, kind, message, opts)
		}
	}
}
