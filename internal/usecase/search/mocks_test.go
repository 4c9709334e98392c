package search

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
)

// --- Mocks ---

type storeCall struct {
	searches []typesense.SearchParams
	common   typesense.CommonParams
}

type mockStore struct {
	multiSearchFn func(searches []typesense.SearchParams) (*typesense.MultiSearchResponse, error)
	unionSearchFn func(searches []typesense.SearchParams) (*typesense.SearchResponse, error)

	multiCalls []storeCall
	unionCalls []storeCall
}

func (m *mockStore) MultiSearch(
	_ context.Context, searches []typesense.SearchParams, common typesense.CommonParams,
) (*typesense.MultiSearchResponse, error) {
	m.multiCalls = append(m.multiCalls, storeCall{searches: searches, common: common})
	if m.multiSearchFn != nil {
		return m.multiSearchFn(searches)
	}
	return &typesense.MultiSearchResponse{Results: make([]typesense.SearchResponse, len(searches))}, nil
}

func (m *mockStore) UnionSearch(
	_ context.Context, searches []typesense.SearchParams, common typesense.CommonParams,
) (*typesense.SearchResponse, error) {
	m.unionCalls = append(m.unionCalls, storeCall{searches: searches, common: common})
	if m.unionSearchFn != nil {
		return m.unionSearchFn(searches)
	}
	return &typesense.SearchResponse{}, nil
}

func (m *mockStore) totalCalls() int { return len(m.multiCalls) + len(m.unionCalls) }

type mockRecorder struct {
	mu      sync.Mutex
	queries []string
	domains []string
}

func (m *mockRecorder) Record(_ context.Context, domainID, query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domains = append(m.domains, domainID)
	m.queries = append(m.queries, query)
}

// --- Builders ---

// byCollection answers every main sub-query with main[collection] and every
// scholar-only sub-query with extra[collection]. Missing entries answer empty.
func byCollection(main, extra map[string]typesense.SearchResponse) func([]typesense.SearchParams) (*typesense.MultiSearchResponse, error) {
	return func(searches []typesense.SearchParams) (*typesense.MultiSearchResponse, error) {
		out := make([]typesense.SearchResponse, len(searches))
		for i, s := range searches {
			if s.FacetBy == collection.ScholarFacetField {
				out[i] = extra[s.Collection]
			} else {
				out[i] = main[s.Collection]
			}
		}
		return &typesense.MultiSearchResponse{Results: out}, nil
	}
}

func doc(fields ...string) typesense.Hit {
	d := make(map[string]any, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		d[fields[i]] = fields[i+1]
	}
	return typesense.Hit{Document: d}
}

func facetCounts(field string, pairs ...any) typesense.FacetCounts {
	fc := typesense.FacetCounts{FieldName: field}
	for i := 0; i+1 < len(pairs); i += 2 {
		fc.Counts = append(fc.Counts, typesense.FacetValue{Value: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return fc
}

func observedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func assertErrorLogged(t *testing.T, logs *observer.ObservedLogs, service string) {
	t.Helper()
	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["service"] != service {
		t.Errorf("expected service=%q in log, got %v", service, fields["service"])
	}
	if _, ok := fields["error"]; !ok {
		t.Error("expected error field in log")
	}
}

func intPtr(n int) *int { return &n }
