// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// DefaultTTL is how long a prayer request stays active.
const DefaultTTL = 24 * time.Hour

// Store owns all reads and writes of prayer requests, participation links,
// topics and devices.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
	ttl time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for creation and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithTTL sets the lifetime of new prayer requests. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a Store on an open connection.
func New(db *sqlx.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
		ttl: DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime applied to new requests.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}
