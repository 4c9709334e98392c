package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/minbar-platform/minbar-search/internal/db"
)

// Counter reads an integer counter. A missing key reads as zero.
func (s *Store) Counter(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Get().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if rueidis.IsRedisNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, &db.Error{Op: db.OpGet, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return n, nil
}

// Incr adds delta to a counter and returns the new value.
func (s *Store) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	cmd := s.b().Incrby().Key(key).Increment(delta).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return n, nil
}

// ExpireNX gives key a ttl unless it already has one, so a daily bucket
// expires relative to its first write.
func (s *Store) ExpireNX(ctx context.Context, key string, ttl time.Duration) error {
	cmd := s.b().Expire().Key(key).Seconds(int64(ttl / time.Second)).Nx().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpExpire, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return nil
}
