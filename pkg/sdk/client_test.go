package minbar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no typesense address provided")
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := New(context.Background(), WithTypesense("http://localhost:8108", ""))
	if err == nil {
		t.Fatal("expected error when api key is missing")
	}
}

func TestNew_WaitsForTypesense(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c, err := New(context.Background(), WithTypesense(srv.URL, "key"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("Status = %q, want ok", h.Status)
	}
	if _, ok := h.Checks["redis"]; ok {
		t.Error("redis check must be absent without WithRedis")
	}
	if _, err := c.Popular(context.Background(), "", time.Now(), 10); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Popular without redis: got %v, want ErrNotEnabled", err)
	}
}

func TestNew_TypesenseNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(context.Background(),
		WithTypesense(srv.URL, "key"),
		WithReadinessTimeout(300*time.Millisecond),
	)
	if err == nil {
		t.Fatal("expected readiness error")
	}
}

func TestHealth_Degraded(t *testing.T) {
	c := testClient(nil, nil, nil)
	c.healthSvc = &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			healthuc.ComponentTypesense: healthuc.CheckOK,
			healthuc.ComponentRedis:     healthuc.CheckError,
		},
	}}

	h := c.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", h.Status)
	}
	if h.Checks["redis"] != "error" || h.Checks["typesense"] != "ok" {
		t.Errorf("Checks = %v", h.Checks)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var o *observer
	o.observe("search", time.Now(), nil)
	o.observeSearch("search", time.Now(), Result{})
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	o.observe("popular", time.Now(), errors.New("redis down"))
	o.observeSearch("search", time.Now(), Result{TotalFound: 3})

	if got := testutil.ToFloat64(o.metrics.operations.WithLabelValues("popular", "error")); got != 1 {
		t.Errorf("popular errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(o.metrics.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("search ok = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(o.metrics.found); n != 1 {
		t.Errorf("found series = %d, want 1", n)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first observer: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second observer: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the already registered collector to be reused")
	}
}

func TestObserver_Logs(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o, _ := newObserver(logger, nil)

	o.observe("collection_search", time.Now(), errors.New("unknown collection"))
	o.observeSearch("browse", time.Now(), Result{TotalFound: 2})

	out := buf.String()
	for _, want := range []string{"operation failed", "op=collection_search", "search completed", "total_found=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
