package querystats

import "time"

// WithClock replaces the clock used to pick the day key (test-only).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}
