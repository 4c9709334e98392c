package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
	"github.com/minbar-platform/minbar-search/internal/domain/search/filter"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/query"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
)

// BrowseService returns the newest documents of every selected collection,
// grouped by collection, with facets counted across all collections.
type BrowseService struct {
	store  Store
	logger *zap.Logger
	limits Limits
}

// NewBrowseService creates a browse service.
func NewBrowseService(store Store, logger *zap.Logger) *BrowseService {
	return &BrowseService{store: store, logger: logger, limits: DefaultLimits()}
}

// WithLimits overrides paging limits. Zero fields keep their defaults.
func (s *BrowseService) WithLimits(l Limits) *BrowseService {
	s.limits = s.limits.merge(l)
	return s
}

// Browse lists the top PerPage documents per selected collection. Query and
// Page in p are ignored. Store failures are logged and produce a result with
// every collection mapped to no hits.
func (s *BrowseService) Browse(ctx context.Context, p Params) result.Result {
	paging := query.NewPaging(1, p.PerPage, s.limits.BrowsePerPage, s.limits.MaxPerPage)
	fb := filter.New(p.DomainID, p.Scholars, p.ContentTypes)
	selected := collection.Select(fb.ContentTypes())

	var b batch
	for _, k := range collection.All() {
		params := typesense.SearchParams{
			Collection: k.Name(),
			QueryBy:    k.QueryBy(),
			FacetBy:    collection.FacetBy(),
			FilterBy:   fb.Build(),
		}
		if !selected.Has(k) {
			params.PerPage = typesense.Int(0)
		}
		b.add(query.Tag{Purpose: query.Main, Collection: k}, params)
	}
	if fb.HasScholars() {
		b.addExtraScholarQueries(selected.Ordered(), fb, 0)
	}

	results, err := b.run(ctx, s.store, typesense.CommonParams{
		Q:       query.Wildcard,
		SortBy:  query.SortByRecent,
		Page:    paging.Page(),
		PerPage: typesense.Int(paging.PerPage()),
	}, s.logger)
	if err != nil {
		failure(ctx, s.logger, serviceBrowse, p, err)
		return result.Empty(paging.Page(), paging.PerPage(), pluralKeys()...)
	}

	groups := make(map[string][]hit.Hit, len(selected))
	total := 0
	for _, r := range results {
		if r.tag.IsExtra() || !selected.Has(r.tag.Collection) {
			continue
		}
		k := r.tag.Collection
		groups[k.PluralKey()] = toHits(r.result.Hits, k.ContentType())
		total += r.result.Found
	}

	merger := facet.NewMerger(facet.MergeOptions{
		Selected:             selected,
		ScholarsFiltered:     fb.HasScholars(),
		ContentTypesFiltered: fb.HasContentTypes(),
		SelectedScholars:     fb.Scholars(),
	})

	res := result.New(groups, merger.Merge(facetSources(results)), total, paging.Page(), paging.PerPage())
	success(serviceBrowse, res)
	return res
}

func pluralKeys() []string {
	kinds := collection.All()
	keys := make([]string, len(kinds))
	for i, k := range kinds {
		keys[i] = k.PluralKey()
	}
	return keys
}
