package search

import (
	"context"

	"github.com/minbar-platform/minbar-search/internal/db/typesense"
)

// Store defines the document store contract for search operations.
type Store interface {
	MultiSearch(
		ctx context.Context, searches []typesense.SearchParams, common typesense.CommonParams,
	) (*typesense.MultiSearchResponse, error)

	UnionSearch(
		ctx context.Context, searches []typesense.SearchParams, common typesense.CommonParams,
	) (*typesense.SearchResponse, error)
}

// QueryRecorder counts executed free-text queries. Implementations must not
// fail the search; errors are theirs to log.
type QueryRecorder interface {
	Record(ctx context.Context, domainID, query string)
}
