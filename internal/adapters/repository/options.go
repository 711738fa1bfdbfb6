package repository

import "time"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithTTL sets how long cached events and leaderboards stay fresh.
// Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *SQLiteStore) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}
