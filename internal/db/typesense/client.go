package typesense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	tsgo "github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"

	"github.com/minbar-platform/minbar-search/internal/db"
	"github.com/minbar-platform/minbar-search/internal/metrics"
)

const (
	apiKeyHeader   = "X-TYPESENSE-API-KEY"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Config holds connection settings for a Typesense server.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client wraps the typesense-go SDK with metrics and error mapping.
// Safe for concurrent use.
type Client struct {
	sdk *tsgo.Client
	// gen is the generated API client. Union answers are a single flat
	// result that the SDK's multi-search type cannot hold, so they are
	// decoded from its raw body.
	gen     *api.ClientWithResponses
	timeout time.Duration
}

// NewClient creates a Typesense client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	server := strings.TrimSuffix(cfg.URL, "/")

	sdk := tsgo.NewClient(
		tsgo.WithServer(server),
		tsgo.WithAPIKey(cfg.APIKey),
		tsgo.WithConnectionTimeout(timeout),
	)

	apiKey := cfg.APIKey
	gen, err := api.NewClientWithResponses(server,
		api.WithHTTPClient(&http.Client{Timeout: timeout}),
		api.WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
			req.Header.Set(apiKeyHeader, apiKey)
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	return &Client{sdk: sdk, gen: gen, timeout: timeout}, nil
}

// MultiSearch runs every sub-query in one request and returns one result per
// sub-query, in submission order.
func (c *Client) MultiSearch(
	ctx context.Context, searches []SearchParams, common CommonParams,
) (*MultiSearchResponse, error) {
	metrics.StoreSubQueries.WithLabelValues(db.OpMultiSearch).Observe(float64(len(searches)))

	start := time.Now()
	res, err := c.sdk.MultiSearch.Perform(ctx, common.toAPI(), api.MultiSearchSearchesParameter{
		Searches: toAPISearches(searches),
	})
	err = mapError(db.OpMultiSearch, err)
	observe(db.OpMultiSearch, start, err)
	if err != nil {
		return nil, err
	}

	out := &MultiSearchResponse{Results: make([]SearchResponse, len(res.Results))}
	for i, r := range res.Results {
		item := fromAPI(r.Found, r.Hits, r.FacetCounts)
		item.Error = deref(r.Error)
		item.Code = int(deref(r.Code))
		out.Results[i] = item
	}
	return out, nil
}

// UnionSearch runs the sub-queries as one union search and returns a single
// relevance-ranked hit list. Union answers carry no facet counts.
func (c *Client) UnionSearch(
	ctx context.Context, searches []SearchParams, common CommonParams,
) (*SearchResponse, error) {
	metrics.StoreSubQueries.WithLabelValues(db.OpUnionSearch).Observe(float64(len(searches)))

	start := time.Now()
	out, err := c.unionSearch(ctx, searches, common)
	observe(db.OpUnionSearch, start, err)
	return out, err
}

func (c *Client) unionSearch(
	ctx context.Context, searches []SearchParams, common CommonParams,
) (*SearchResponse, error) {
	resp, err := c.gen.MultiSearchWithResponse(ctx, common.toAPI(), api.MultiSearchJSONRequestBody{
		Union:    pointer.True(),
		Searches: toAPISearches(searches),
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpUnionSearch, Err: err}
	}
	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, &APIError{Status: status, Message: errorMessage(resp.Body)}
	}

	var res api.SearchResult
	if err := json.Unmarshal(resp.Body, &res); err != nil {
		return nil, &db.Error{Op: db.OpUnionSearch, Err: fmt.Errorf("decode response: %w", err)}
	}
	out := fromAPI(res.Found, res.Hits, res.FacetCounts)
	return &out, nil
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) error {
	start := time.Now()
	ok, err := c.sdk.Health(ctx, c.timeout)
	err = mapError(db.OpHealth, err)
	if err == nil && !ok {
		err = &db.Error{Op: db.OpHealth, Err: errors.New("server reports not ok")}
	}
	observe(db.OpHealth, start, err)
	return err
}

// WaitForReady polls Health until the server answers ok or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for typesense: %w", ctx.Err())
		case <-ticker.C:
			if err := c.Health(ctx); err == nil {
				return nil
			}
		}
	}
}

// mapError turns SDK status errors into *APIError and everything else into
// *db.Error.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *tsgo.HTTPError
	if errors.As(err, &httpErr) {
		return &APIError{Status: httpErr.Status, Message: errorMessage(httpErr.Body)}
	}
	return &db.Error{Op: op, Err: err}
}

func observe(op string, start time.Time, err error) {
	metrics.StoreRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.StoreRequestsTotal.WithLabelValues(op, statusLabel(err)).Inc()
}

// errorMessage extracts {"message": "..."} from an error body, falling back
// to the raw text.
func errorMessage(raw []byte) string {
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "api_error"
	}
	return "error"
}
