package result

import (
	"testing"

	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
)

func TestNew(t *testing.T) {
	h := hit.New(map[string]any{"id": "1", "title": "Test Book"}, nil, "book")
	r := New(
		map[string][]hit.Hit{"books": {h}, "news": {}},
		map[string][]facet.Count{"media_type": {{Value: "text", Count: 1}}},
		2, 1, 6,
	)

	if r.TotalFound() != 2 {
		t.Errorf("TotalFound() = %d", r.TotalFound())
	}
	if r.Page() != 1 || r.PerPage() != 6 {
		t.Errorf("Page()/PerPage() = %d/%d", r.Page(), r.PerPage())
	}
	if got := r.Hits("books"); len(got) != 1 || got[0].Title() != "Test Book" {
		t.Errorf("Hits(books) = %v", got)
	}
	if got := r.Hits("news"); len(got) != 0 {
		t.Errorf("Hits(news) = %v", got)
	}
	if got := r.Facet("media_type"); len(got) != 1 || got[0].Count != 1 {
		t.Errorf("Facet(media_type) = %v", got)
	}
	keys := r.Keys()
	if len(keys) != 2 || keys[0] != "books" || keys[1] != "news" {
		t.Errorf("Keys() = %v", keys)
	}
	if r.IsEmpty() {
		t.Error("result with hits must not be empty")
	}
}

func TestNew_NilMaps(t *testing.T) {
	r := New(nil, nil, 0, 1, 12)
	if r.GroupedHits() == nil || r.Facets() == nil {
		t.Fatal("accessors must never return nil maps")
	}
	if !r.IsEmpty() {
		t.Error("expected empty result")
	}
}

func TestEmpty(t *testing.T) {
	r := Empty(1, 12, MixedKey)
	if !r.IsEmpty() {
		t.Fatal("expected empty result")
	}
	hits, ok := r.GroupedHits()[MixedKey]
	if !ok || hits == nil || len(hits) != 0 {
		t.Errorf("expected %q mapped to empty list, got %v (present=%v)", MixedKey, hits, ok)
	}
}

func TestIsEmpty_TotalFoundWithoutHits(t *testing.T) {
	// Hits are not fetched for page sizes of zero but found may be positive.
	r := New(map[string][]hit.Hit{"books": {}}, nil, 3, 1, 6)
	if r.IsEmpty() {
		t.Error("result with total_found > 0 must not be empty")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		found, perPage, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{100, 51, 2},
		{5, 0, 0},
	}
	for _, tc := range tests {
		r := New(nil, nil, tc.found, 1, tc.perPage)
		if got := r.TotalPages(); got != tc.want {
			t.Errorf("TotalPages(found=%d, perPage=%d) = %d, want %d", tc.found, tc.perPage, got, tc.want)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	h := hit.New(map[string]any{"id": "1"}, nil, "news")
	r := New(
		map[string][]hit.Hit{"news": {h}},
		map[string][]facet.Count{"media_type": {{Value: "text", Count: 1}}},
		1, 1, 12,
	)

	groups := r.GroupedHits()
	groups["news"] = nil
	facets := r.Facets()
	facets["media_type"][0].Count = 99

	if len(r.Hits("news")) != 1 {
		t.Error("mutating GroupedHits() leaked into result")
	}
	if r.Facet("media_type")[0].Count != 1 {
		t.Error("mutating Facets() leaked into result")
	}
}
