package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/minbar-platform/minbar-search/internal/db"
)

// ZIncrBy increments the score of member in the sorted set at key.
func (s *Store) ZIncrBy(ctx context.Context, key, member string, incr float64) error {
	cmd := s.b().Zincrby().Key(key).Increment(incr).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZIncrBy, Err: err}
	}
	return nil
}

// ZRevRangeWithScores returns up to limit members with the highest scores.
// A missing key yields an empty slice.
func (s *Store) ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]db.ScoredMember, error) {
	if limit <= 0 {
		return []db.ScoredMember{}, nil
	}
	cmd := s.b().Zrevrange().Key(key).Start(0).Stop(int64(limit - 1)).Withscores().Build()
	scores, err := s.do(ctx, cmd).AsZScores()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return []db.ScoredMember{}, nil
		}
		return nil, &db.Error{Op: db.OpZRevRange, Err: err}
	}
	out := make([]db.ScoredMember, len(scores))
	for i, z := range scores {
		out[i] = db.ScoredMember{Member: z.Member, Score: z.Score}
	}
	return out, nil
}
