package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
	"github.com/minbar-platform/minbar-search/internal/domain/search/filter"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/query"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
)

// CollectionService runs paginated searches inside one collection.
type CollectionService struct {
	store  Store
	logger *zap.Logger
	limits Limits
}

// NewCollectionService creates a single-collection search service.
func NewCollectionService(store Store, logger *zap.Logger) *CollectionService {
	return &CollectionService{store: store, logger: logger, limits: DefaultLimits()}
}

// WithLimits overrides paging limits. Zero fields keep their defaults.
func (s *CollectionService) WithLimits(l Limits) *CollectionService {
	s.limits = s.limits.merge(l)
	return s
}

// Search queries collection k. A blank query lists the newest documents.
// Content types in p are ignored. Store failures are logged and produce an
// empty result; only an invalid kind is returned as an error.
func (s *CollectionService) Search(ctx context.Context, k collection.Kind, p Params) (result.Result, error) {
	if !k.IsValid() {
		return result.Result{}, fmt.Errorf("%w: %d", domain.ErrUnknownCollection, int(k))
	}

	paging := query.NewPaging(p.Page, p.PerPage, s.limits.DefaultPerPage, s.limits.MaxPerPage)
	q := strings.TrimSpace(p.Query)
	fb := filter.New(p.DomainID, p.Scholars, nil)

	var b batch
	b.add(query.Tag{Purpose: query.Main, Collection: k}, typesense.SearchParams{
		Collection: k.Name(),
		QueryBy:    k.QueryBy(),
		FacetBy:    collection.FacetBy(),
		FilterBy:   fb.Build(),
	})
	if fb.HasScholars() {
		b.addExtraScholarQueries([]collection.Kind{k}, fb, 0)
	}

	results, err := b.run(ctx, s.store, typesense.CommonParams{
		Q:                   query.TextOrWildcard(q),
		SortBy:              query.SortFor(q),
		Page:                paging.Page(),
		PerPage:             typesense.Int(paging.PerPage()),
		HighlightFullFields: query.HighlightFields,
	}, s.logger)
	if err != nil {
		failure(ctx, s.logger, serviceCollection, p, err, zap.String("collection", k.Name()))
		return result.Empty(paging.Page(), paging.PerPage(), k.PluralKey()), nil
	}

	primary := results[0].result
	facets := facet.Extract(toBlocks(primary.FacetCounts))
	if fb.HasScholars() {
		delete(facets, collection.ScholarFacetField)
		extra := facet.Extract(toBlocks(results[1].result.FacetCounts))
		if counts, ok := extra[collection.ScholarFacetField]; ok {
			facets[collection.ScholarFacetField] = counts
		}
	}

	r := result.New(
		map[string][]hit.Hit{k.PluralKey(): toHits(primary.Hits, k.ContentType())},
		facets, primary.Found, paging.Page(), paging.PerPage(),
	)
	success(serviceCollection, r)
	return r, nil
}
