package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
	"github.com/minbar-platform/minbar-search/internal/domain"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
	"github.com/minbar-platform/minbar-search/internal/domain/search/filter"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/query"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
	"github.com/minbar-platform/minbar-search/internal/logger"
	"github.com/minbar-platform/minbar-search/internal/metrics"
)

// Service names used in logs and metrics.
const (
	serviceCollection = "collection"
	serviceBrowse     = "browse"
	serviceMixed      = "mixed"
)

var errResultCount = errors.New("result count does not match sub-query count")

// batch is an ordered list of purpose-tagged sub-queries.
type batch struct {
	tags     []query.Tag
	searches []typesense.SearchParams
}

func (b *batch) add(tag query.Tag, params typesense.SearchParams) {
	b.tags = append(b.tags, tag)
	b.searches = append(b.searches, params)
}

// addExtraScholarQueries appends one zero-hit scholar facet query per kind.
// The filter leaves out the scholar clause so counts stay disjunctive.
func (b *batch) addExtraScholarQueries(kinds []collection.Kind, fb filter.Builder, maxFacetValues int) {
	for _, k := range kinds {
		b.add(query.Tag{Purpose: query.ExtraScholarFacet, Collection: k}, typesense.SearchParams{
			Collection:     k.Name(),
			QueryBy:        k.QueryBy(),
			FacetBy:        collection.ScholarFacetField,
			FilterBy:       fb.WithoutScholars(),
			PerPage:        typesense.Int(0),
			MaxFacetValues: maxFacetValues,
		})
	}
}

// tagged pairs a sub-query result with the tag it was submitted under.
type tagged struct {
	tag    query.Tag
	result typesense.SearchResponse
}

// run sends the batch and pairs every result with its tag.
func (b *batch) run(
	ctx context.Context, store Store, common typesense.CommonParams, l *zap.Logger,
) ([]tagged, error) {
	resp, err := store.MultiSearch(ctx, b.searches, common)
	if err != nil {
		return nil, fmt.Errorf("multi search: %w", err)
	}
	if len(resp.Results) != len(b.tags) {
		return nil, fmt.Errorf("%w: sent %d, got %d", errResultCount, len(b.tags), len(resp.Results))
	}

	out := make([]tagged, len(b.tags))
	for i, tag := range b.tags {
		res := resp.Results[i]
		if res.Failed() {
			logger.FromContextOr(ctx, l).Warn("sub-query rejected",
				zap.String("purpose", tag.Purpose.String()),
				zap.String("collection", tag.Collection.Name()),
				zap.Int("code", res.Code),
				zap.String("error", res.Error),
			)
		}
		out[i] = tagged{tag: tag, result: res}
	}
	return out, nil
}

func facetSources(results []tagged) []facet.Source {
	sources := make([]facet.Source, len(results))
	for i, r := range results {
		sources[i] = facet.Source{Tag: r.tag, Blocks: toBlocks(r.result.FacetCounts)}
	}
	return sources
}

func toBlocks(counts []typesense.FacetCounts) []facet.Block {
	blocks := make([]facet.Block, len(counts))
	for i, fc := range counts {
		values := make([]facet.Count, len(fc.Counts))
		for j, v := range fc.Counts {
			values[j] = facet.Count{Value: v.Value, Count: v.Count}
		}
		blocks[i] = facet.Block{Field: fc.FieldName, Counts: values}
	}
	return blocks
}

func toHit(h typesense.Hit, contentType string) hit.Hit {
	var highlights []hit.Highlight
	if len(h.Highlights) > 0 {
		highlights = make([]hit.Highlight, len(h.Highlights))
		for i, hl := range h.Highlights {
			highlights[i] = hit.Highlight{Field: hl.Field, Snippet: hl.Snippet}
		}
	}
	return hit.New(h.Document, highlights, contentType)
}

func toHits(hits []typesense.Hit, contentType string) []hit.Hit {
	out := make([]hit.Hit, len(hits))
	for i, h := range hits {
		out[i] = toHit(h, contentType)
	}
	return out
}

// failure logs a store error with the request context and records the outcome.
func failure(ctx context.Context, l *zap.Logger, service string, p Params, err error, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("service", service),
		zap.String("query", p.Query),
		zap.String("domain_id", p.DomainID),
		zap.Strings("scholars", p.Scholars),
		zap.Strings("content_types", p.ContentTypes),
		zap.Error(fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)),
	}, extra...)
	logger.FromContextOr(ctx, l).Error("search failed, returning empty result", fields...)
	metrics.SearchRequestsTotal.WithLabelValues(service, metrics.OutcomeStoreError).Inc()
}

// success records the outcome of a completed search.
func success(service string, r result.Result) {
	outcome := metrics.OutcomeOK
	if r.IsEmpty() {
		outcome = metrics.OutcomeEmpty
	}
	metrics.SearchRequestsTotal.WithLabelValues(service, outcome).Inc()

	n := 0
	for _, hits := range r.GroupedHits() {
		n += len(hits)
	}
	metrics.SearchHitsReturned.WithLabelValues(service).Observe(float64(n))
}
