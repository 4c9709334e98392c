package querystats

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/db"
	"github.com/minbar-platform/minbar-search/internal/logger"
	"github.com/minbar-platform/minbar-search/internal/metrics"
)

const (
	allDomains = "all"
	dayLayout  = "2006-01-02"
	// maxQueryLen caps the stored member length in runes.
	maxQueryLen = 200
)

// store is the consumer interface for statistics operations (ISP).
type store interface {
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string, delta int64) (int64, error)
	ExpireNX(ctx context.Context, key string, ttl time.Duration) error
	ZIncrBy(ctx context.Context, key, member string, incr float64) error
	ZRevRangeWithScores(ctx context.Context, key string, limit int) ([]db.ScoredMember, error)
}

// Entry is one popular query with the number of times it was searched.
type Entry struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Store counts search queries per domain and day (ZINCRBY + INCRBY with TTL).
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// New creates a query statistics store. Keys start with prefix and expire
// ttl after the first query of their day.
func New(s store, prefix string, ttl time.Duration, l *zap.Logger) *Store {
	return &Store{
		store:  s,
		prefix: prefix,
		ttl:    ttl,
		logger: l,
		now:    time.Now,
	}
}

// Record counts one execution of q for domainID. Blank queries are ignored.
// Failures are logged and never returned.
func (s *Store) Record(ctx context.Context, domainID, q string) {
	q = Normalize(q)
	if q == "" {
		return
	}

	day := s.now().UTC()
	setKey := s.setKey(domainID, day)
	totalKey := s.totalKey(domainID, day)

	if err := s.store.ZIncrBy(ctx, setKey, q, 1); err != nil {
		s.fail(ctx, db.OpZIncrBy, setKey, err)
		return
	}
	if _, err := s.store.Incr(ctx, totalKey, 1); err != nil {
		s.fail(ctx, db.OpIncrBy, totalKey, err)
		return
	}

	// TTL only when the key has none yet (NX, not reset on repeat).
	for _, key := range []string{setKey, totalKey} {
		if err := s.store.ExpireNX(ctx, key, s.ttl); err != nil {
			s.fail(ctx, db.OpExpire, key, err)
			return
		}
	}
}

// Top returns up to limit most frequent queries for domainID on day.
func (s *Store) Top(ctx context.Context, domainID string, day time.Time, limit int) ([]Entry, error) {
	key := s.setKey(domainID, day.UTC())
	members, err := s.store.ZRevRangeWithScores(ctx, key, limit)
	if err != nil {
		return nil, fmt.Errorf("querystats ZREVRANGE %s: %w", key, err)
	}

	out := make([]Entry, len(members))
	for i, m := range members {
		out[i] = Entry{Query: m.Member, Count: int64(math.Round(m.Score))}
	}
	return out, nil
}

// Total returns how many queries were recorded for domainID on day.
// Returns 0 if nothing was recorded.
func (s *Store) Total(ctx context.Context, domainID string, day time.Time) (int64, error) {
	key := s.totalKey(domainID, day.UTC())
	n, err := s.store.Counter(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("querystats total: %w", err)
	}
	return n, nil
}

// Normalize lower-cases q, collapses inner whitespace and truncates it.
func Normalize(q string) string {
	q = strings.Join(strings.Fields(strings.ToLower(q)), " ")
	if r := []rune(q); len(r) > maxQueryLen {
		q = string(r[:maxQueryLen])
	}
	return q
}

// Keys follow the pattern {prefix}querystats:{domain|all}:daily:{YYYY-MM-DD}.
func (s *Store) setKey(domainID string, day time.Time) string {
	scope := strings.TrimSpace(domainID)
	if scope == "" {
		scope = allDomains
	}
	return s.prefix + "querystats:" + scope + ":daily:" + day.Format(dayLayout)
}

func (s *Store) totalKey(domainID string, day time.Time) string {
	return s.setKey(domainID, day) + ":total"
}

func (s *Store) fail(ctx context.Context, op, key string, err error) {
	metrics.QueryStatsErrorsTotal.WithLabelValues(op).Inc()
	logger.FromContextOr(ctx, s.logger).Warn("query stats write failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)
}
