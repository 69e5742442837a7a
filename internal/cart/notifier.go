package cart

import "context"

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// DefaultPosition is where the storefront renders cart toasts.
const DefaultPosition = "top-center"

type NotifyOptions struct {
	Position string `json:"position"`
	// Key is the storage key of the cart that raised the notification.
	Key string `json:"key,omitempty"`
}

// Notifier receives fire-and-forget toast events.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string, opts NotifyOptions)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Kind, string, NotifyOptions) {}

type notification struct {
	kind    Kind
	message string
}
