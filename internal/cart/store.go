package cart

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"restaurant-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	MaxQuantity      = 10
	MaxOrderNotes    = 100
	CacheDuration    = time.Hour
	DrawerCloseDelay = 4 * time.Second
)

// Store owns one customer's in-progress order. Every operation runs to
// completion under the store lock, then persists and notifies.
type Store struct {
	mu sync.Mutex

	key         string
	storage     Storage
	notifier    Notifier
	now         func() time.Time
	ttl         time.Duration
	drawerDelay time.Duration
	position    string

	items        []entity.CartItem
	orderNotes   string
	tableNumber  *string
	isCartOpen   bool
	isDrawerOpen bool
	lastUpdated  time.Time
	expiresAt    time.Time

	drawerTimer *time.Timer
	drawerGen   uint64
	closed      bool
}

// State is a read-only copy of the cart.
type State struct {
	Items        []entity.CartItem `json:"items"`
	OrderNotes   string            `json:"orderNotes"`
	TableNumber  *string           `json:"tableNumber"`
	IsCartOpen   bool              `json:"isCartOpen"`
	IsDrawerOpen bool              `json:"isDrawerOpen"`
	LastUpdated  time.Time         `json:"lastUpdated"`
	ExpiresAt    time.Time         `json:"expiresAt"`
}

// Option configures a Store built by New.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCacheDuration overrides the sliding expiration window.
func WithCacheDuration(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithDrawerAutoClose sets how long the drawer stays open. Zero disables
// auto-close.
func WithDrawerAutoClose(d time.Duration) Option {
	return func(s *Store) { s.drawerDelay = d }
}

// WithToastPosition sets where notifications ask to be shown.
func WithToastPosition(position string) Option {
	return func(s *Store) { s.position = position }
}

// New builds a cart persisted under key and rehydrates it from storage.
// A nil storage keeps the cart in memory only; a nil notifier drops toasts.
func New(ctx context.Context, key string, storage Storage, notifier Notifier, opts ...Option) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	s := &Store{
		key:         key,
		storage:     storage,
		notifier:    notifier,
		now:         time.Now,
		ttl:         CacheDuration,
		drawerDelay: DrawerCloseDelay,
		position:    DefaultPosition,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.resetLocked(s.now())
	s.mu.Unlock()

	s.Rehydrate(ctx)
	return s
}

func (s *Store) Key() string { return s.key }

// mutate applies fn under the lock, slides the expiration window, persists
// and then emits the notifications fn produced.
func (s *Store) mutate(ctx context.Context, fn func(now time.Time) []notification) {
	s.mu.Lock()
	now := s.now()
	pending := fn(now)
	s.touchLocked(now)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.emit(ctx, pending)
}

// AddItem puts quantity of food on the line for notes, merging with an
// existing line and opening the drawer.
func (s *Store) AddItem(ctx context.Context, food entity.Food, quantity int, notes string) {
	s.mutate(ctx, func(now time.Time) []notification {
		pending := s.expireLocked(now)

		quantity = clampQuantity(quantity)
		itemID := DeriveItemID(food.ID, notes)
		if i := s.indexLocked(itemID); i >= 0 {
			s.items[i].Quantity = clampQuantity(s.items[i].Quantity + quantity)
		} else {
			food.Allergens = slices.Clone(food.Allergens)
			s.items = append(s.items, entity.CartItem{
				ID:           itemID,
				Food:         food,
				Quantity:     quantity,
				ProductNotes: strings.TrimSpace(notes),
				AddedAt:      now.UTC(),
			})
		}
		s.openDrawerLocked()

		return append(pending, notification{
			kind:    KindSuccess,
			message: fmt.Sprintf("%dx %s added to cart", quantity, food.Name),
		})
	})
}

func (s *Store) RemoveItem(ctx context.Context, itemID string) {
	s.mutate(ctx, func(time.Time) []notification {
		s.removeLocked(itemID)
		return nil
	})
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line,
// anything above MaxQuantity is clamped.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	s.mutate(ctx, func(time.Time) []notification {
		if quantity <= 0 {
			s.removeLocked(itemID)
			return nil
		}
		if i := s.indexLocked(itemID); i >= 0 {
			s.items[i].Quantity = min(quantity, MaxQuantity)
		}
		return nil
	})
}

// UpdateProductNotes replaces a line's notes. The line keeps the id it was
// created with, so later edits never merge lines.
func (s *Store) UpdateProductNotes(ctx context.Context, itemID, notes string) {
	s.mutate(ctx, func(time.Time) []notification {
		if i := s.indexLocked(itemID); i >= 0 {
			s.items[i].ProductNotes = strings.TrimSpace(notes)
		}
		return nil
	})
}

func (s *Store) UpdateOrderNotes(ctx context.Context, notes string) {
	s.mutate(ctx, func(time.Time) []notification {
		s.orderNotes = normalizeOrderNotes(notes)
		return nil
	})
}

// SetTableNumber overwrites the table without validating it. Callers that
// accept user input reject blank values themselves.
func (s *Store) SetTableNumber(ctx context.Context, table string) {
	s.mutate(ctx, func(time.Time) []notification {
		table = strings.TrimSpace(table)
		s.tableNumber = &table
		return []notification{{kind: KindSuccess, message: fmt.Sprintf("Table %s selected", table)}}
	})
}

// ClearCart empties the cart and closes the cart and drawer panels.
func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, func(time.Time) []notification {
		s.clearLocked()
		s.isCartOpen = false
		s.closeDrawerLocked()
		return nil
	})
}

// OpenCart shows the cart and hides the drawer. An expired cart is cleared
// first.
func (s *Store) OpenCart(ctx context.Context) {
	s.mutate(ctx, func(now time.Time) []notification {
		pending := s.expireLocked(now)
		s.isCartOpen = true
		s.closeDrawerLocked()
		return pending
	})
}

// ToggleCart flips cart visibility after the expiration check.
func (s *Store) ToggleCart(ctx context.Context) {
	s.mutate(ctx, func(now time.Time) []notification {
		pending := s.expireLocked(now)
		s.isCartOpen = !s.isCartOpen
		if s.isCartOpen {
			s.closeDrawerLocked()
		}
		return pending
	})
}

func (s *Store) CloseCart() {
	s.mu.Lock()
	s.isCartOpen = false
	s.mu.Unlock()
}

func (s *Store) Item(itemID string) (entity.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(itemID); i >= 0 {
		return cloneItem(s.items[i]), true
	}
	return entity.CartItem{}, false
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.items)
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.items)
}

// TotalItems sums quantities over the copied items.
func (st State) TotalItems() int { return totalItems(st.Items) }

func (st State) TotalPrice() float64 { return totalPrice(st.Items) }

// ItemCount returns the quantity on the line for foodID with notes, or 0.
func (s *Store) ItemCount(foodID, notes string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(DeriveItemID(foodID, notes)); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entity.CartItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, cloneItem(item))
	}
	return State{
		Items:        items,
		OrderNotes:   s.orderNotes,
		TableNumber:  cloneString(s.tableNumber),
		IsCartOpen:   s.isCartOpen,
		IsDrawerOpen: s.isDrawerOpen,
		LastUpdated:  s.lastUpdated,
		ExpiresAt:    s.expiresAt,
	}
}

// Close stops the drawer timer. The cart stays readable.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.stopDrawerTimerLocked()
}

func (s *Store) indexLocked(itemID string) int {
	return slices.IndexFunc(s.items, func(item entity.CartItem) bool { return item.ID == itemID })
}

func (s *Store) removeLocked(itemID string) {
	s.items = slices.DeleteFunc(s.items, func(item entity.CartItem) bool { return item.ID == itemID })
}

func (s *Store) clearLocked() {
	s.items = make([]entity.CartItem, 0)
	s.orderNotes = ""
	s.tableNumber = nil
}

func (s *Store) emit(ctx context.Context, pending []notification) {
	for _, n := range pending {
		s.notifier.Notify(ctx, n.kind, n.message, NotifyOptions{Position: s.position, Key: s.key})
	}
}

func totalItems(items []entity.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalPrice(items []entity.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Food.Price * float64(item.Quantity)
	}
	return total
}

func clampQuantity(quantity int) int {
	return max(1, min(quantity, MaxQuantity))
}

func normalizeOrderNotes(notes string) string {
	notes = strings.TrimSpace(notes)
	if runes := []rune(notes); len(runes) > MaxOrderNotes {
		notes = strings.TrimSpace(string(runes[:MaxOrderNotes]))
	}
	return notes
}

func cloneItem(item entity.CartItem) entity.CartItem {
	item.Food.Allergens = slices.Clone(item.Food.Allergens)
	return item
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
