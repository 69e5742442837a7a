package cart

import "time"

// The drawer is the short-lived "added to cart" panel. Each open arms a
// close task; any later close or re-open cancels it.

func (s *Store) OpenDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openDrawerLocked()
}

func (s *Store) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeDrawerLocked()
}

func (s *Store) ToggleDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isDrawerOpen {
		s.closeDrawerLocked()
		return
	}
	s.openDrawerLocked()
}

func (s *Store) IsDrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isDrawerOpen
}

func (s *Store) IsCartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isCartOpen
}

func (s *Store) openDrawerLocked() {
	s.isDrawerOpen = true
	s.stopDrawerTimerLocked()
	if s.drawerDelay <= 0 || s.closed {
		return
	}

	gen := s.drawerGen
	s.drawerTimer = time.AfterFunc(s.drawerDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// a timer that lost the race with Stop must not close a newer drawer
		if s.drawerGen == gen {
			s.isDrawerOpen = false
			s.drawerTimer = nil
		}
	})
}

func (s *Store) closeDrawerLocked() {
	s.isDrawerOpen = false
	s.stopDrawerTimerLocked()
}

func (s *Store) stopDrawerTimerLocked() {
	s.drawerGen++
	if s.drawerTimer != nil {
		s.drawerTimer.Stop()
		s.drawerTimer = nil
	}
}
