package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
	"github.com/minbar-platform/minbar-search/internal/domain/search/filter"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/query"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
)

// MixedService ranks hits from every selected collection in one list.
//
// Union searches return no facet counts, so each call makes two round trips:
// a union query for the hits and a per-collection multi-search for facets.
type MixedService struct {
	store    Store
	recorder QueryRecorder
	logger   *zap.Logger
	limits   Limits
}

// NewMixedService creates a cross-collection search service.
func NewMixedService(store Store, logger *zap.Logger) *MixedService {
	return &MixedService{store: store, logger: logger, limits: DefaultLimits()}
}

// WithLimits overrides paging and facet limits. Zero fields keep their defaults.
func (s *MixedService) WithLimits(l Limits) *MixedService {
	s.limits = s.limits.merge(l)
	return s
}

// WithRecorder counts every executed query in r.
func (s *MixedService) WithRecorder(r QueryRecorder) *MixedService {
	s.recorder = r
	return s
}

// Search runs p.Query across the selected collections. The hits come back
// under result.MixedKey in relevance order. When no registered collection
// matches p.ContentTypes the store is not called. Store failures are logged
// and produce an empty result.
func (s *MixedService) Search(ctx context.Context, p Params) result.Result {
	paging := query.NewPaging(p.Page, p.PerPage, s.limits.DefaultPerPage, s.limits.MaxPerPage)
	fb := filter.New(p.DomainID, p.Scholars, p.ContentTypes)
	selected := collection.Select(fb.ContentTypes())
	if len(selected) == 0 {
		res := result.Empty(paging.Page(), paging.PerPage(), result.MixedKey)
		success(serviceMixed, res)
		return res
	}

	q := query.TextOrWildcard(strings.TrimSpace(p.Query))
	if s.recorder != nil && q != query.Wildcard {
		s.recorder.Record(ctx, fb.DomainID(), q)
	}

	hits, found, err := s.unionHits(ctx, q, fb, selected, paging)
	if err != nil {
		failure(ctx, s.logger, serviceMixed, p, err)
		return result.Empty(paging.Page(), paging.PerPage(), result.MixedKey)
	}

	facets, err := s.facets(ctx, q, fb, selected)
	if err != nil {
		failure(ctx, s.logger, serviceMixed, p, err)
		return result.Empty(paging.Page(), paging.PerPage(), result.MixedKey)
	}

	res := result.New(map[string][]hit.Hit{result.MixedKey: hits}, facets, found, paging.Page(), paging.PerPage())
	success(serviceMixed, res)
	return res
}

func (s *MixedService) unionHits(
	ctx context.Context, q string, fb filter.Builder, selected collection.Set, paging query.Paging,
) ([]hit.Hit, int, error) {
	kinds := selected.Ordered()
	searches := make([]typesense.SearchParams, len(kinds))
	for i, k := range kinds {
		searches[i] = typesense.SearchParams{
			Collection: k.Name(),
			QueryBy:    k.QueryBy(),
			FilterBy:   fb.Build(),
		}
	}

	resp, err := s.store.UnionSearch(ctx, searches, typesense.CommonParams{
		Q:                   q,
		SortBy:              query.SortByRelevance,
		Page:                paging.Page(),
		PerPage:             typesense.Int(paging.PerPage()),
		HighlightFullFields: query.HighlightFields,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("union search: %w", err)
	}

	hits := make([]hit.Hit, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		ct, _ := h.Document["content_type"].(string)
		if ct == "" {
			continue
		}
		hits = append(hits, toHit(h, ct))
	}
	return hits, resp.Found, nil
}

func (s *MixedService) facets(
	ctx context.Context, q string, fb filter.Builder, selected collection.Set,
) (map[string][]facet.Count, error) {
	var b batch
	for _, k := range collection.All() {
		params := typesense.SearchParams{
			Collection:     k.Name(),
			QueryBy:        k.QueryBy(),
			FacetBy:        collection.FacetBy(),
			FilterBy:       fb.Build(),
			MaxFacetValues: s.limits.MaxFacetValues,
		}
		if !selected.Has(k) {
			params.PerPage = typesense.Int(0)
		}
		b.add(query.Tag{Purpose: query.Main, Collection: k}, params)
	}
	if fb.HasScholars() {
		b.addExtraScholarQueries(selected.Ordered(), fb, s.limits.MaxFacetValues)
	}

	results, err := b.run(ctx, s.store, typesense.CommonParams{Q: q, PerPage: typesense.Int(0)}, s.logger)
	if err != nil {
		return nil, err
	}

	merger := facet.NewMerger(facet.MergeOptions{
		Selected:             selected,
		ScholarsFiltered:     fb.HasScholars(),
		ContentTypesFiltered: fb.HasContentTypes(),
		SelectedScholars:     fb.Scholars(),
	})
	return merger.Merge(facetSources(results)), nil
}
