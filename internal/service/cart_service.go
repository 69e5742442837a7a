package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"restaurant-service/internal/cart"
	"restaurant-service/internal/entity"
)

type FoodResolver interface {
	Food(ctx context.Context, itemID int) (entity.Food, error)
}

type cartSession struct {
	store    *cart.Store
	lastSeen time.Time
}

// CartService keeps one cart.Store per browser session. Stores are built on
// first use and rehydrated from storage, so an evicted session picks up
// where it left off.
type CartService struct {
	storage  cart.Storage
	notifier cart.Notifier
	foods    FoodResolver
	opts     []cart.Option
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*cartSession
}

// NewCartService creates a new instance of CartService. opts are applied to
// every Store it builds.
func NewCartService(storage cart.Storage, notifier cart.Notifier, foods FoodResolver, opts ...cart.Option) *CartService {
	return &CartService{
		storage:  storage,
		notifier: notifier,
		foods:    foods,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*cartSession),
	}
}

// SessionKey is the storage key of a session's cart.
func SessionKey(session string) string {
	return cart.StorageKey + ":" + session
}

// For returns the store of session, creating it when needed.
func (s *CartService) For(ctx context.Context, session string) *cart.Store {
	session = strings.TrimSpace(session)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[session]; ok {
		sess.lastSeen = s.now()
		return sess.store
	}

	store := cart.New(ctx, SessionKey(session), s.storage, s.notifier, s.opts...)
	s.sessions[session] = &cartSession{store: store, lastSeen: s.now()}
	logger.Debug().Str("session", session).Msg("Cart session opened")
	return store
}

// AddFood resolves itemID against the catalog and adds it to the session's
// cart.
func (s *CartService) AddFood(ctx context.Context, session string, itemID, quantity int, notes string) (cart.State, error) {
	food, err := s.foods.Food(ctx, itemID)
	if err != nil {
		return cart.State{}, err
	}

	store := s.For(ctx, session)
	store.AddItem(ctx, food, quantity, notes)
	return store.State(), nil
}

// Evict drops in-memory stores idle for longer than idle. Their state stays
// in storage. It returns how many sessions were dropped.
func (s *CartService) Evict(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []*cart.Store
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			stale = append(stale, sess.store)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, store := range stale {
		store.Close()
	}
	if len(stale) > 0 {
		logger.Info().Int("sessions", len(stale)).Msg("Evicted idle cart sessions")
	}
	return len(stale)
}

// Sessions is the number of carts held in memory.
func (s *CartService) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every store's drawer timer.
func (s *CartService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*cartSession)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.store.Close()
	}
}

// RunEvictions evicts idle sessions every interval until ctx is done.
func (s *CartService) RunEvictions(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Evict(idle)
		}
	}
}
