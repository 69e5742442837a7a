package cart

import (
	"context"
	"strings"
	"time"

	"restaurant-service/internal/entity"
)

// ToSnapshot returns the persisted form of the cart. UI flags are left out.
func (s *Store) ToSnapshot() entity.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// FromSnapshot replaces the cart with a persisted snapshot, repairs it and
// runs the post-load expiration check.
func (s *Store) FromSnapshot(ctx context.Context, snapshot entity.CartSnapshot) {
	s.mu.Lock()
	now := s.now()

	s.items = repairItems(snapshot.Items)
	s.orderNotes = normalizeOrderNotes(snapshot.OrderNotes)
	s.tableNumber = nil
	if snapshot.TableNumber != nil {
		if table := strings.TrimSpace(*snapshot.TableNumber); table != "" {
			s.tableNumber = &table
		}
	}
	s.isCartOpen = false
	s.isDrawerOpen = false
	s.stopDrawerTimerLocked()
	s.lastUpdated, s.expiresAt = restoreWindow(snapshot, now, s.ttl)

	pending, discarded := s.validateRehydratedLocked(now)
	if discarded {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	s.emit(ctx, pending)
}

// Rehydrate loads the cart from storage. A failed or empty load leaves the
// defaults in place.
func (s *Store) Rehydrate(ctx context.Context) {
	if s.storage == nil {
		return
	}

	snapshot, err := s.storage.Load(ctx, s.key)
	if err != nil {
		logger.Error().Err(err).Str("key", s.key).Msg("Error loading cart snapshot")
		return
	}
	if snapshot == nil {
		return
	}
	s.FromSnapshot(ctx, *snapshot)
}

// validateRehydratedLocked discards a restored cart whose window already
// elapsed.
func (s *Store) validateRehydratedLocked(now time.Time) ([]notification, bool) {
	if !now.After(s.expiresAt) {
		return nil, false
	}

	var pending []notification
	if len(s.items) > 0 {
		logger.Info().Str("key", s.key).Int("items", len(s.items)).Msg("discarding expired cart snapshot")
		pending = append(pending, notification{kind: KindInfo, message: expiredMessage})
	}
	s.resetLocked(now)
	return pending, true
}

func (s *Store) snapshotLocked() entity.CartSnapshot {
	items := make([]entity.CartItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, cloneItem(item))
	}
	return entity.CartSnapshot{
		Items:       items,
		OrderNotes:  s.orderNotes,
		TableNumber: cloneString(s.tableNumber),
		LastUpdated: s.lastUpdated.UnixMilli(),
		ExpiresAt:   s.expiresAt.UnixMilli(),
	}
}

// persistLocked is best-effort: a failed write is logged, never returned.
func (s *Store) persistLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(ctx, s.key, s.snapshotLocked()); err != nil {
		logger.Error().Err(err).Str("key", s.key).Msg("Error saving cart snapshot")
	}
}

// restoreWindow fills in timestamps older snapshots did not carry: a missing
// expiry is derived from the last update, a missing last update is now.
func restoreWindow(snapshot entity.CartSnapshot, now time.Time, ttl time.Duration) (time.Time, time.Time) {
	lastUpdated := now
	if snapshot.LastUpdated > 0 {
		lastUpdated = time.UnixMilli(snapshot.LastUpdated).UTC()
	}
	expiresAt := lastUpdated.Add(ttl)
	if snapshot.ExpiresAt > 0 {
		expiresAt = time.UnixMilli(snapshot.ExpiresAt).UTC()
	}
	return lastUpdated, expiresAt
}

// repairItems drops unusable lines, clamps quantities and merges lines that
// share an id.
func repairItems(items []entity.CartItem) []entity.CartItem {
	repaired := make([]entity.CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		item = cloneItem(item)
		item.ProductNotes = strings.TrimSpace(item.ProductNotes)
		if i, ok := index[item.ID]; ok {
			repaired[i].Quantity = clampQuantity(repaired[i].Quantity + item.Quantity)
			continue
		}
		item.Quantity = clampQuantity(item.Quantity)
		index[item.ID] = len(repaired)
		repaired = append(repaired, item)
	}
	return repaired
}
