package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
)

func TestCollectionSearch_Pagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     *int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, nil, 1, 12},
		{"too large", 2, intPtr(1000), 2, 51},
		{"zero", 1, intPtr(0), 1, 1},
		{"negative", -3, intPtr(-5), 1, 1},
		{"in range", 4, intPtr(20), 4, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{}
			svc := NewCollectionService(store, zap.NewNop())

			res, err := svc.Search(context.Background(), collection.Lecture, Params{Page: tc.page, PerPage: tc.perPage})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Page() != tc.wantPage || res.PerPage() != tc.wantPerPage {
				t.Errorf("page/per_page = %d/%d, want %d/%d", res.Page(), res.PerPage(), tc.wantPage, tc.wantPerPage)
			}

			common := store.multiCalls[0].common
			if common.Page != tc.wantPage || *common.PerPage != tc.wantPerPage {
				t.Errorf("store got page/per_page %d/%d, want %d/%d", common.Page, *common.PerPage, tc.wantPage, tc.wantPerPage)
			}
		})
	}
}

func TestCollectionSearch_WithLimits(t *testing.T) {
	store := &mockStore{}
	svc := NewCollectionService(store, zap.NewNop()).WithLimits(Limits{DefaultPerPage: 24, MaxPerPage: 30})

	res, _ := svc.Search(context.Background(), collection.Book, Params{})
	if res.PerPage() != 24 {
		t.Errorf("expected default per_page 24, got %d", res.PerPage())
	}
	res, _ = svc.Search(context.Background(), collection.Book, Params{PerPage: intPtr(100)})
	if res.PerPage() != 30 {
		t.Errorf("expected per_page clamped to 30, got %d", res.PerPage())
	}
}

func TestCollectionSearch_MainQueryOnly(t *testing.T) {
	store := &mockStore{
		multiSearchFn: byCollection(map[string]typesense.SearchResponse{
			"Fatwa": {
				Found: 7,
				Hits:  []typesense.Hit{doc("id", "10", "title", "On fasting")},
				FacetCounts: []typesense.FacetCounts{
					facetCounts("scholar_name", "A", 3, "B", 4),
					facetCounts("media_type", "text", 7),
				},
			},
		}, nil),
	}
	svc := NewCollectionService(store, zap.NewNop())

	res, err := svc.Search(context.Background(), collection.Fatwa, Params{Query: "  fasting ", DomainID: "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.multiCalls) != 1 || len(store.multiCalls[0].searches) != 1 {
		t.Fatalf("expected a single sub-query, got %+v", store.multiCalls)
	}
	primary := store.multiCalls[0].searches[0]
	if primary.Collection != "Fatwa" || primary.QueryBy != "title,content_text,scholar_name" {
		t.Errorf("unexpected main query: %+v", primary)
	}
	if primary.FacetBy != "content_type,scholar_name,media_type" || primary.FilterBy != "domain_ids:=[3]" {
		t.Errorf("unexpected main facet/filter: %+v", primary)
	}
	common := store.multiCalls[0].common
	if common.Q != "fasting" || common.SortBy != "_text_match:desc" {
		t.Errorf("unexpected common params: %+v", common)
	}
	if common.HighlightFullFields != "title,description,name,content_text" {
		t.Errorf("unexpected highlight fields: %q", common.HighlightFullFields)
	}

	hits := res.Hits("fatwas")
	if len(hits) != 1 || hits[0].Title() != "On fasting" || hits[0].ContentType() != "fatwa" {
		t.Errorf("unexpected hits: %+v", hits)
	}
	if res.TotalFound() != 7 {
		t.Errorf("TotalFound() = %d, want 7", res.TotalFound())
	}
	assert.Equal(t, []facet.Count{{Value: "B", Count: 4}, {Value: "A", Count: 3}}, res.Facet("scholar_name"))
}

func TestCollectionSearch_BlankQueryBrowsesByRecency(t *testing.T) {
	store := &mockStore{}
	svc := NewCollectionService(store, zap.NewNop())

	if _, err := svc.Search(context.Background(), collection.News, Params{Query: "   "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	common := store.multiCalls[0].common
	if common.Q != "*" || common.SortBy != "created_at_ts:desc" {
		t.Errorf("expected wildcard sorted by recency, got %+v", common)
	}
	if store.multiCalls[0].searches[0].FilterBy != "" {
		t.Errorf("expected empty filter, got %q", store.multiCalls[0].searches[0].FilterBy)
	}
}

func TestCollectionSearch_DisjunctiveScholars(t *testing.T) {
	store := &mockStore{
		multiSearchFn: byCollection(
			map[string]typesense.SearchResponse{
				"Lecture": {
					Found: 2,
					Hits:  []typesense.Hit{doc("id", "1"), doc("id", "2")},
					FacetCounts: []typesense.FacetCounts{
						facetCounts("scholar_name", "A", 2),
						facetCounts("media_type", "audio", 2),
					},
				},
			},
			map[string]typesense.SearchResponse{
				"Lecture": {FacetCounts: []typesense.FacetCounts{facetCounts("scholar_name", "A", 5, "B", 3)}},
			},
		),
	}
	svc := NewCollectionService(store, zap.NewNop())

	res, err := svc.Search(context.Background(), collection.Lecture, Params{
		DomainID: "1", Scholars: []string{"A", " "}, ContentTypes: []string{"book"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	searches := store.multiCalls[0].searches
	if len(searches) != 2 {
		t.Fatalf("expected main + extra sub-query, got %d", len(searches))
	}
	if searches[0].FilterBy != "domain_ids:=[1] && scholar_name:=[`A`]" {
		t.Errorf("unexpected main filter: %q", searches[0].FilterBy)
	}
	extra := searches[1]
	if extra.Collection != "Lecture" || extra.FacetBy != "scholar_name" || extra.FilterBy != "domain_ids:=[1]" {
		t.Errorf("unexpected extra query: %+v", extra)
	}
	if extra.PerPage == nil || *extra.PerPage != 0 {
		t.Errorf("extra query must request zero hits, got %v", extra.PerPage)
	}

	if len(res.Hits("lectures")) != 2 || res.TotalFound() != 2 {
		t.Errorf("hits must come from the main query only: %d hits, found %d", len(res.Hits("lectures")), res.TotalFound())
	}
	assert.ElementsMatch(t, []facet.Count{{Value: "A", Count: 5}, {Value: "B", Count: 3}}, res.Facet("scholar_name"))
	assert.Equal(t, []facet.Count{{Value: "audio", Count: 2}}, res.Facet("media_type"))
}

func TestCollectionSearch_StoreFailure(t *testing.T) {
	store := &mockStore{
		multiSearchFn: func([]typesense.SearchParams) (*typesense.MultiSearchResponse, error) {
			return nil, &typesense.APIError{Status: 503, Message: "not ready"}
		},
	}
	l, logs := observedLogger(t)
	svc := NewCollectionService(store, l)

	res, err := svc.Search(context.Background(), collection.Series, Params{Query: "tafsir"})
	if err != nil {
		t.Fatalf("store failure must not escape: %v", err)
	}
	if !res.IsEmpty() {
		t.Error("expected empty result")
	}
	groups := res.GroupedHits()
	if hits, ok := groups["series"]; !ok || len(hits) != 0 || len(groups) != 1 {
		t.Errorf("expected single empty series group, got %v", groups)
	}
	if len(res.Facets()) != 0 {
		t.Errorf("expected no facets, got %v", res.Facets())
	}

	assertErrorLogged(t, logs, "collection")
	fields := logs.All()[0].ContextMap()
	if fields["collection"] != "Series" || fields["query"] != "tafsir" {
		t.Errorf("missing request context in log: %v", fields)
	}
}

func TestCollectionSearch_ResultCountMismatch(t *testing.T) {
	store := &mockStore{
		multiSearchFn: func([]typesense.SearchParams) (*typesense.MultiSearchResponse, error) {
			return &typesense.MultiSearchResponse{}, nil
		},
	}
	l, logs := observedLogger(t)
	svc := NewCollectionService(store, l)

	res, err := svc.Search(context.Background(), collection.Book, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsEmpty() {
		t.Error("expected empty result on mismatched response")
	}
	assertErrorLogged(t, logs, "collection")
}

func TestCollectionSearch_UnknownKind(t *testing.T) {
	store := &mockStore{}
	svc := NewCollectionService(store, zap.NewNop())

	_, err := svc.Search(context.Background(), collection.Kind(42), Params{})
	if !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
	if store.totalCalls() != 0 {
		t.Error("store must not be called for an unknown collection")
	}
}
