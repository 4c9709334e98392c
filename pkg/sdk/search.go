package minbar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

// SearchOptions narrows a search. The zero value searches everything.
type SearchOptions struct {
	DomainID string
	// ContentTypes selects collections by lower-cased name ("book", "fatwa").
	ContentTypes []string
	Scholars     []string
	Page         int
	// PerPage zero selects the configured default.
	PerPage int
}

func (o *SearchOptions) params(q string) searchuc.Params {
	if o == nil {
		return searchuc.Params{Query: q}
	}
	p := searchuc.Params{
		Query:        q,
		DomainID:     o.DomainID,
		ContentTypes: o.ContentTypes,
		Scholars:     o.Scholars,
		Page:         o.Page,
	}
	if o.PerPage != 0 {
		n := o.PerPage
		p.PerPage = &n
	}
	return p
}

// Search ranks query across the selected collections. Hits are grouped under
// MixedKey. A blank query browses instead.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) Result {
	if strings.TrimSpace(query) == "" {
		return c.Browse(ctx, opts)
	}
	start := c.now()
	res := fromResult(c.mixedSvc.Search(ctx, opts.params(query)))
	c.obs.observeSearch("search", start, res)
	return res
}

// Browse returns the newest documents of every selected collection, grouped
// by collection plural key. Page is ignored.
func (c *Client) Browse(ctx context.Context, opts *SearchOptions) Result {
	start := c.now()
	res := fromResult(c.browseSvc.Browse(ctx, opts.params("")))
	c.obs.observeSearch("browse", start, res)
	return res
}

// CollectionSearch searches one collection.
type CollectionSearch struct {
	name   string
	client *Client
}

// Collection returns the search service for a collection given by display
// name ("Book") or plural key ("books").
func (c *Client) Collection(name string) *CollectionSearch {
	return &CollectionSearch{name: name, client: c}
}

// Search runs query against the collection. It fails only when the
// collection name is unknown.
func (s *CollectionSearch) Search(ctx context.Context, query string, opts *SearchOptions) (Result, error) {
	start := s.client.now()
	k, err := collection.Parse(s.name)
	if err != nil {
		s.client.obs.observe("collection_search", start, err)
		return Result{}, fmt.Errorf("collection search: %w", err)
	}
	if opts != nil && len(opts.ContentTypes) > 0 {
		o := *opts
		o.ContentTypes = nil
		opts = &o
	}
	r, err := s.client.collectionSvc.Search(ctx, k, opts.params(query))
	if err != nil {
		s.client.obs.observe("collection_search", start, err)
		return Result{}, fmt.Errorf("collection search: %w", err)
	}
	res := fromResult(r)
	s.client.obs.observeSearch("collection_search", start, res)
	return res, nil
}

// Popular returns the most searched queries of day for domainID, at most
// limit entries. It fails with ErrNotEnabled unless WithRedis was given.
func (c *Client) Popular(ctx context.Context, domainID string, day time.Time, limit int) (_ []PopularQuery, err error) {
	start := c.now()
	defer func() { c.obs.observe("popular", start, err) }()

	if c.stats == nil {
		return nil, fmt.Errorf("popular: %w", ErrNotEnabled)
	}
	entries, err := c.stats.Top(ctx, domainID, day, limit)
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	out := make([]PopularQuery, len(entries))
	for i, e := range entries {
		out[i] = PopularQuery{Query: e.Query, Count: e.Count}
	}
	return out, nil
}
