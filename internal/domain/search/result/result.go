package result

import (
	"maps"
	"slices"

	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
)

// MixedKey groups relevance-ranked hits spanning collections.
const MixedKey = "mixed"

// Result is the outcome of one search request (immutable value object).
type Result struct {
	groups     map[string][]hit.Hit
	facets     map[string][]facet.Count
	totalFound int
	page       int
	perPage    int
}

// New creates a search result. Nil maps are treated as empty.
func New(
	groups map[string][]hit.Hit, facets map[string][]facet.Count,
	totalFound, page, perPage int,
) Result {
	if groups == nil {
		groups = map[string][]hit.Hit{}
	}
	if facets == nil {
		facets = map[string][]facet.Count{}
	}
	return Result{
		groups: groups, facets: facets,
		totalFound: totalFound, page: page, perPage: perPage,
	}
}

// Empty creates a result whose given group keys all map to no hits.
func Empty(page, perPage int, keys ...string) Result {
	groups := make(map[string][]hit.Hit, len(keys))
	for _, k := range keys {
		groups[k] = []hit.Hit{}
	}
	return New(groups, nil, 0, page, perPage)
}

// Hits returns the hits grouped under key.
func (r Result) Hits(key string) []hit.Hit { return slices.Clone(r.groups[key]) }

// GroupedHits returns a copy of every group.
func (r Result) GroupedHits() map[string][]hit.Hit {
	out := make(map[string][]hit.Hit, len(r.groups))
	for k, v := range r.groups {
		out[k] = slices.Clone(v)
	}
	return out
}

// Keys returns the group keys in sorted order.
func (r Result) Keys() []string {
	return slices.Sorted(maps.Keys(r.groups))
}

// Facets returns a copy of the merged facet counts.
func (r Result) Facets() map[string][]facet.Count {
	out := make(map[string][]facet.Count, len(r.facets))
	for k, v := range r.facets {
		out[k] = slices.Clone(v)
	}
	return out
}

// Facet returns the counts for one facet field.
func (r Result) Facet(field string) []facet.Count { return slices.Clone(r.facets[field]) }

// TotalFound returns the number of matching documents.
func (r Result) TotalFound() int { return r.totalFound }

// Page returns the 1-based page number.
func (r Result) Page() int { return r.page }

// PerPage returns the page size.
func (r Result) PerPage() int { return r.perPage }

// TotalPages returns the page count for TotalFound at PerPage.
func (r Result) TotalPages() int {
	if r.perPage <= 0 {
		return 0
	}
	return (r.totalFound + r.perPage - 1) / r.perPage
}

// IsEmpty reports whether every group is empty and nothing was found.
func (r Result) IsEmpty() bool {
	if r.totalFound != 0 {
		return false
	}
	for _, hits := range r.groups {
		if len(hits) > 0 {
			return false
		}
	}
	return true
}
