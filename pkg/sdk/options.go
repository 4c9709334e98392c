package minbar

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	typesenseURL     string
	typesenseKey     string
	timeout          time.Duration
	readinessTimeout time.Duration

	redisAddrs    []string
	redisPassword string
	statsPrefix   string
	statsTTL      time.Duration

	defaultPerPage int
	maxPerPage     int
	browsePerPage  int

	logger     *slog.Logger
	zapLogger  *zap.Logger
	metricsReg prometheus.Registerer
}

// WithTypesense sets the document store address and API key. Required.
func WithTypesense(url, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.typesenseURL = url
		c.typesenseKey = apiKey
	})
}

// WithTimeout bounds every document store request. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithReadinessTimeout sets how long New waits for the document store.
// Zero skips the wait. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithRedis enables popular-query statistics stored in Redis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithStats sets the statistics key prefix and how long daily counters live.
// Defaults: "minbar:" and 30 days.
func WithStats(prefix string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.statsPrefix = prefix
		c.statsTTL = ttl
	})
}

// WithPaging overrides the page sizes. Zero keeps a default.
// Defaults: 12 per page, at most 51, 6 per collection when browsing.
func WithPaging(defaultPerPage, maxPerPage, browsePerPage int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPerPage = defaultPerPage
		c.maxPerPage = maxPerPage
		c.browsePerPage = browsePerPage
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithZap routes the search services' own logs (store failures, rejected
// sub-queries) to l. Default: discarded.
func WithZap(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.zapLogger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
