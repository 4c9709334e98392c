package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/config"
	dbRedis "github.com/minbar-platform/minbar-search/internal/db/redis"
	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	logpkg "github.com/minbar-platform/minbar-search/internal/logger"
	"github.com/minbar-platform/minbar-search/internal/repository/querystats"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

// deps holds the clients and services one command needs.
type deps struct {
	cfg    config.Config
	logger *zap.Logger
	docs   *typesense.Client
	redis  *dbRedis.Store
	stats  *querystats.Store
}

// loadDeps builds clients from the config selected by --env. Redis is
// connected only when withStats is set and the config enables it.
func loadDeps(c *cli.Command, withStats bool) (*deps, error) {
	env := c.String("env")
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := ""
	if c.Bool("debug") {
		level = "debug"
	}
	logger, err := logpkg.NewLogger("cli", level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	docs, err := typesense.NewClient(typesense.Config{
		URL:     cfg.Typesense.URL,
		APIKey:  cfg.Typesense.APIKey,
		Timeout: time.Duration(cfg.Typesense.TimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("creating typesense client: %w", err)
	}

	d := &deps{cfg: cfg, logger: logger, docs: docs}
	if withStats && cfg.Redis.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("creating redis store: %w", err)
		}
		d.redis = store
		d.stats = querystats.New(store, cfg.Stats.KeyPrefix, cfg.Stats.TTL(), logger)
	}
	return d, nil
}

func (d *deps) close() {
	if d.redis != nil {
		d.redis.Close()
	}
	_ = d.logger.Sync()
}

func (d *deps) limits() searchuc.Limits {
	return searchuc.Limits{
		DefaultPerPage: d.cfg.Search.DefaultPerPage,
		MaxPerPage:     d.cfg.Search.MaxPerPage,
		BrowsePerPage:  d.cfg.Search.BrowsePerPage,
		MaxFacetValues: d.cfg.Search.MaxFacetValues,
	}
}

// health builds a checker covering redis when it is connected.
func (d *deps) health() *healthuc.Service {
	if d.redis != nil {
		return healthuc.New(d.docs, d.redis)
	}
	return healthuc.New(d.docs, nil)
}
