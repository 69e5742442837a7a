package cart

import (
	"context"
	"time"
)

const expiredMessage = "Your cart has expired and was cleared"

// CheckExpiration wipes the cart when its window has elapsed and it still
// holds items. Expiration is polled: AddItem, OpenCart, ToggleCart and
// rehydration call it, there is no background timer.
func (s *Store) CheckExpiration(ctx context.Context) bool {
	s.mu.Lock()
	now := s.now()
	pending := s.expireLocked(now)
	if len(pending) > 0 {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	s.emit(ctx, pending)
	return len(pending) > 0
}

func (s *Store) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// expireLocked clears items, order notes and table together, never a subset.
func (s *Store) expireLocked(now time.Time) []notification {
	if !now.After(s.expiresAt) || len(s.items) == 0 {
		return nil
	}

	logger.Info().Str("key", s.key).Int("items", len(s.items)).Msg("cart expired")
	s.clearLocked()
	s.touchLocked(now)
	return []notification{{kind: KindInfo, message: expiredMessage}}
}

func (s *Store) touchLocked(now time.Time) {
	s.lastUpdated = now
	s.expiresAt = now.Add(s.ttl)
}

func (s *Store) resetLocked(now time.Time) {
	s.clearLocked()
	s.isCartOpen = false
	s.touchLocked(now)
}
