package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/config"
	dbRedis "github.com/minbar-platform/minbar-search/internal/db/redis"
	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	logpkg "github.com/minbar-platform/minbar-search/internal/logger"
	"github.com/minbar-platform/minbar-search/internal/metrics"
	"github.com/minbar-platform/minbar-search/internal/repository/querystats"
	chiTransport "github.com/minbar-platform/minbar-search/internal/transport/chi"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
	"github.com/minbar-platform/minbar-search/internal/version"
)

// gzipMinSize is the smallest response body worth compressing.
const gzipMinSize = 1024

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting minbar-search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("typesense_url", cfg.Typesense.URL),
		zap.Strings("redis_addrs", cfg.Redis.Addrs),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterStoreMetrics()
	metrics.RegisterSearchMetrics()

	ctx := context.Background()

	docs, err := typesense.NewClient(typesense.Config{
		URL:     cfg.Typesense.URL,
		APIKey:  cfg.Typesense.APIKey,
		Timeout: time.Duration(cfg.Typesense.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create typesense client", zap.Error(err))
	}
	if err := docs.WaitForReady(ctx, time.Duration(cfg.Typesense.ReadinessTimeout)*time.Second); err != nil {
		// Search degrades to empty results while typesense is down.
		logger.Warn("Typesense not ready", zap.Error(err))
	} else {
		logger.Info("Connected to typesense")
	}

	// Optional query statistics. Pass nil interfaces, not typed nil pointers.
	var (
		recorder searchuc.QueryRecorder
		pinger   healthuc.StatsPinger
		stats    *querystats.Store
	)
	if cfg.Redis.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis")

		stats = querystats.New(store, cfg.Stats.KeyPrefix, cfg.Stats.TTL(), logger)
		recorder = stats
		pinger = store
	}

	limits := searchuc.Limits{
		DefaultPerPage: cfg.Search.DefaultPerPage,
		MaxPerPage:     cfg.Search.MaxPerPage,
		BrowsePerPage:  cfg.Search.BrowsePerPage,
		MaxFacetValues: cfg.Search.MaxFacetValues,
	}
	collectionSvc := searchuc.NewCollectionService(docs, logger).WithLimits(limits)
	browseSvc := searchuc.NewBrowseService(docs, logger).WithLimits(limits)
	mixedSvc := searchuc.NewMixedService(docs, logger).WithLimits(limits).WithRecorder(recorder)
	healthSvc := healthuc.New(docs, pinger)

	server := chiTransport.NewServer(collectionSvc, browseSvc, mixedSvc, healthSvc, logger)
	if stats != nil {
		server.WithPopular(stats, cfg.Stats.TopLimit)
	}

	compress, err := chiTransport.CompressMiddleware(gzipMinSize)
	if err != nil {
		logger.Fatal("Failed to build gzip middleware", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Use(compress)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
