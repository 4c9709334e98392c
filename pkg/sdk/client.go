package minbar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/minbar-platform/minbar-search/internal/db/redis"
	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
	"github.com/minbar-platform/minbar-search/internal/repository/querystats"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultStatsPrefix      = "minbar:"
	defaultStatsTTL         = 30 * 24 * time.Hour
)

// Internal interfaces for substitution in tests.
type mixedUseCase interface {
	Search(ctx context.Context, p searchuc.Params) result.Result
}

type browseUseCase interface {
	Browse(ctx context.Context, p searchuc.Params) result.Result
}

type collectionUseCase interface {
	Search(ctx context.Context, k collection.Kind, p searchuc.Params) (result.Result, error)
}

type statsReader interface {
	Top(ctx context.Context, domainID string, day time.Time, limit int) ([]querystats.Entry, error)
}

// Client is the minbar SDK entry point.
type Client struct {
	closeFn       func()
	mixedSvc      mixedUseCase
	browseSvc     browseUseCase
	collectionSvc collectionUseCase
	stats         statsReader
	healthSvc     healthUseCase
	obs           *observer
	now           func() time.Time
}

// New creates a Client and waits for the document store to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
		statsPrefix:      defaultStatsPrefix,
		statsTTL:         defaultStatsTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.typesenseURL == "" {
		return nil, errors.New("minbar: typesense address required (use WithTypesense)")
	}

	docs, err := typesense.NewClient(typesense.Config{
		URL:     cfg.typesenseURL,
		APIKey:  cfg.typesenseKey,
		Timeout: cfg.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("minbar: create typesense client: %w", err)
	}
	if cfg.readinessTimeout > 0 {
		if err := docs.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			return nil, fmt.Errorf("minbar: typesense not ready: %w", err)
		}
	}

	var store *dbRedis.Store
	if len(cfg.redisAddrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("minbar: create redis store: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return wireClient(docs, store, cfg, obs), nil
}

func wireClient(docs *typesense.Client, store *dbRedis.Store, cfg *clientConfig, obs *observer) *Client {
	logger := cfg.zapLogger
	if logger == nil {
		logger = zap.NewNop()
	}
	limits := searchuc.Limits{
		DefaultPerPage: cfg.defaultPerPage,
		MaxPerPage:     cfg.maxPerPage,
		BrowsePerPage:  cfg.browsePerPage,
	}

	mixed := searchuc.NewMixedService(docs, logger).WithLimits(limits)
	c := &Client{
		closeFn:       func() {},
		mixedSvc:      mixed,
		browseSvc:     searchuc.NewBrowseService(docs, logger).WithLimits(limits),
		collectionSvc: searchuc.NewCollectionService(docs, logger).WithLimits(limits),
		healthSvc:     healthuc.New(docs, nil),
		obs:           obs,
		now:           time.Now,
	}

	// Pass nil interfaces (not typed nil pointers) when redis is off.
	if store != nil {
		stats := querystats.New(store, cfg.statsPrefix, cfg.statsTTL, logger)
		mixed.WithRecorder(stats)
		c.stats = stats
		c.healthSvc = healthuc.New(docs, store)
		c.closeFn = store.Close
	}
	return c
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}
