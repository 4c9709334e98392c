package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/minbar-platform/minbar-search/internal/domain/search/facet"
)

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeCollectionNotFound ErrorResponseCode = "collection_not_found"
	ErrorResponseCodeNotEnabled         ErrorResponseCode = "not_enabled"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchMode names the service that produced a SearchResponse.
type SearchMode string

// Search modes.
const (
	SearchModeBrowse     SearchMode = "browse"
	SearchModeMixed      SearchMode = "mixed"
	SearchModeCollection SearchMode = "collection"
)

// SearchResponse is the body of every search endpoint.
type SearchResponse struct {
	Mode       SearchMode               `json:"mode"`
	Groups     map[string][]SearchHit   `json:"groups"`
	Facets     map[string][]facet.Count `json:"facets"`
	TotalFound int                      `json:"total_found"`
	Page       int                      `json:"page"`
	PerPage    int                      `json:"per_page"`
	TotalPages int                      `json:"total_pages"`
}

// SearchHit is one document of a search answer.
type SearchHit struct {
	ID                     string `json:"id"`
	ContentType            string `json:"content_type"`
	Slug                   string `json:"slug,omitempty"`
	Title                  string `json:"title"`
	HighlightedTitle       string `json:"highlighted_title"`
	Description            string `json:"description,omitempty"`
	HighlightedDescription string `json:"highlighted_description,omitempty"`
	ScholarName            string `json:"scholar_name,omitempty"`
	ScholarSlug            string `json:"scholar_slug,omitempty"`
	MediaType              string `json:"media_type,omitempty"`
	ReadTime               int    `json:"read_time,omitempty"`
	ThumbnailURL           string `json:"thumbnail_url,omitempty"`
	AudioURL               string `json:"audio_url,omitempty"`
	VideoURL               string `json:"video_url,omitempty"`
	Duration               int    `json:"duration,omitempty"`
	Kind                   string `json:"kind,omitempty"`
	LessonCount            int    `json:"lesson_count,omitempty"`
	URL                    string `json:"url,omitempty"`
}

// PopularQuery is one entry of the popular queries list.
type PopularQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// PopularResponse is the body of GET /api/v1/search/popular.
type PopularResponse struct {
	Day     string         `json:"day"`
	Total   int64          `json:"total"`
	Queries []PopularQuery `json:"queries"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SearchParams are the query parameters of GET /api/v1/search.
type SearchParams struct {
	Q            *string   `form:"q,omitempty" json:"q,omitempty"`
	DomainID     *string   `form:"domain_id,omitempty" json:"domain_id,omitempty"`
	ContentTypes *[]string `form:"content_types,omitempty" json:"content_types,omitempty"`
	Scholars     *[]string `form:"scholars,omitempty" json:"scholars,omitempty"`
	Page         *int      `form:"page,omitempty" json:"page,omitempty"`
	PerPage      *int      `form:"per_page,omitempty" json:"per_page,omitempty"`
}

// CollectionSearchParams are the query parameters of
// GET /api/v1/collections/{collection}/search.
type CollectionSearchParams struct {
	Q        *string   `form:"q,omitempty" json:"q,omitempty"`
	DomainID *string   `form:"domain_id,omitempty" json:"domain_id,omitempty"`
	Scholars *[]string `form:"scholars,omitempty" json:"scholars,omitempty"`
	Page     *int      `form:"page,omitempty" json:"page,omitempty"`
	PerPage  *int      `form:"per_page,omitempty" json:"per_page,omitempty"`
}

// PopularParams are the query parameters of GET /api/v1/search/popular.
type PopularParams struct {
	DomainID *string `form:"domain_id,omitempty" json:"domain_id,omitempty"`
	Limit    *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Day      *string `form:"day,omitempty" json:"day,omitempty"`
}

// InvalidParamFormatError reports a query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// bindQuery binds one optional, exploded form parameter into dest.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	for _, b := range []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"domain_id", &p.DomainID},
		{"content_types", &p.ContentTypes},
		{"scholars", &p.Scholars},
		{"page", &p.Page},
		{"per_page", &p.PerPage},
	} {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return SearchParams{}, err
		}
	}
	return p, nil
}

func bindCollectionSearchParams(r *http.Request) (CollectionSearchParams, error) {
	var p CollectionSearchParams
	for _, b := range []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"domain_id", &p.DomainID},
		{"scholars", &p.Scholars},
		{"page", &p.Page},
		{"per_page", &p.PerPage},
	} {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return CollectionSearchParams{}, err
		}
	}
	return p, nil
}

func bindPopularParams(r *http.Request) (PopularParams, error) {
	var p PopularParams
	for _, b := range []struct {
		name string
		dest any
	}{
		{"domain_id", &p.DomainID},
		{"limit", &p.Limit},
		{"day", &p.Day},
	} {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return PopularParams{}, err
		}
	}
	return p, nil
}
