package db

import (
	"context"
	"time"
)

// Store is the key/value facade used for query statistics.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	CounterStore
	SortedSetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CounterStore keeps integer counters that expire with their day.
type CounterStore interface {
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string, delta int64) (int64, error)
	ExpireNX(ctx context.Context, key string, ttl time.Duration) error
}

// ScoredMember is one sorted-set entry.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedSetStore provides scored ranking operations.
type SortedSetStore interface {
	ZIncrBy(ctx context.Context, key, member string, incr float64) error
	ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]ScoredMember, error)
}
