package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/minbar-platform/minbar-search/internal/domain"
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
	logpkg "github.com/minbar-platform/minbar-search/internal/logger"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
	dayLayout           = "2006-01-02"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search JSON API.
type Server struct {
	collections   CollectionSearcher
	browse        Browser
	mixed         MixedSearcher
	health        HealthChecker
	popular       PopularQueries
	popularLimit  int
	now           func() time.Time
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	collections CollectionSearcher,
	browse Browser,
	mixed MixedSearcher,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		collections:  collections,
		browse:       browse,
		mixed:        mixed,
		health:       health,
		popularLimit: defaultPopularLimit,
		now:          time.Now,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownCollection, http.StatusNotFound, ErrorResponseCodeCollectionNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeBadRequest),
		sentinelHandler(domain.ErrNotEnabled, http.StatusNotFound, ErrorResponseCodeNotEnabled),
	}
	return s
}

// WithPopular enables GET /api/v1/search/popular. defaultLimit applies when
// the caller sends no limit.
func (s *Server) WithPopular(p PopularQueries, defaultLimit int) *Server {
	s.popular = p
	if defaultLimit > 0 {
		s.popularLimit = min(defaultLimit, maxPopularLimit)
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/search", s.Search)
		r.Get("/search/popular", s.PopularQueries)
		r.Get("/collections/{collection}/search", s.CollectionSearch)
	})
}

// Search runs a mixed search when q is non-blank and a browse otherwise.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	p := searchuc.Params{
		Query:        deref(params.Q),
		DomainID:     deref(params.DomainID),
		ContentTypes: splitList(params.ContentTypes),
		Scholars:     deref(params.Scholars),
		Page:         deref(params.Page),
		PerPage:      params.PerPage,
	}

	if strings.TrimSpace(p.Query) == "" {
		writeJSON(w, http.StatusOK, searchResponse(SearchModeBrowse, s.browse.Browse(r.Context(), p)))
		return
	}
	writeJSON(w, http.StatusOK, searchResponse(SearchModeMixed, s.mixed.Search(r.Context(), p)))
}

// CollectionSearch searches the collection named in the path.
func (s *Server) CollectionSearch(w http.ResponseWriter, r *http.Request) {
	k, err := collection.Parse(gochi.URLParam(r, "collection"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	params, err := bindCollectionSearchParams(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	res, err := s.collections.Search(r.Context(), k, searchuc.Params{
		Query:    deref(params.Q),
		DomainID: deref(params.DomainID),
		Scholars: deref(params.Scholars),
		Page:     deref(params.Page),
		PerPage:  params.PerPage,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse(SearchModeCollection, res))
}

// PopularQueries returns the most frequent mixed-search queries of one day.
func (s *Server) PopularQueries(w http.ResponseWriter, r *http.Request) {
	if s.popular == nil {
		s.handleDomainError(w, r, fmt.Errorf("popular queries: %w", domain.ErrNotEnabled))
		return
	}

	params, err := bindPopularParams(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	limit := s.popularLimit
	if params.Limit != nil {
		if *params.Limit < 1 || *params.Limit > maxPopularLimit {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest,
				fmt.Sprintf("limit must be between 1 and %d", maxPopularLimit))
			return
		}
		limit = *params.Limit
	}

	day := s.now().UTC()
	if params.Day != nil && *params.Day != "" {
		day, err = time.Parse(dayLayout, *params.Day)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "day must be formatted as YYYY-MM-DD")
			return
		}
	}

	domainID := deref(params.DomainID)
	entries, err := s.popular.Top(r.Context(), domainID, day, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	total, err := s.popular.Total(r.Context(), domainID, day)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	queries := make([]PopularQuery, len(entries))
	for i, e := range entries {
		queries[i] = PopularQuery{Query: e.Query, Count: e.Count}
	}
	writeJSON(w, http.StatusOK, PopularResponse{
		Day:     day.Format(dayLayout),
		Total:   total,
		Queries: queries,
	})
}

// HealthCheck reports component health; 503 unless every component is ok.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics exposes prometheus collectors.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownCollection,
		domain.ErrInvalidRequest,
		domain.ErrNotEnabled,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	l := logpkg.FromContextOr(r.Context(), s.logger)
	l.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	l.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	var pe *InvalidParamFormatError
	if errors.As(err, &pe) {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest,
			fmt.Sprintf("invalid value for parameter %s", pe.ParamName))
		return
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "invalid request")
}

func searchResponse(mode SearchMode, r result.Result) SearchResponse {
	groups := make(map[string][]SearchHit)
	for key, hits := range r.GroupedHits() {
		out := make([]SearchHit, len(hits))
		for i, h := range hits {
			out[i] = hitToAPI(h)
		}
		groups[key] = out
	}
	return SearchResponse{
		Mode:       mode,
		Groups:     groups,
		Facets:     r.Facets(),
		TotalFound: r.TotalFound(),
		Page:       r.Page(),
		PerPage:    r.PerPage(),
		TotalPages: r.TotalPages(),
	}
}

func hitToAPI(h hit.Hit) SearchHit {
	return SearchHit{
		ID:                     h.ID(),
		ContentType:            h.ContentType(),
		Slug:                   h.Slug(),
		Title:                  h.Title(),
		HighlightedTitle:       h.HighlightedTitle(),
		Description:            h.Description(),
		HighlightedDescription: h.HighlightedDescription(),
		ScholarName:            h.ScholarName(),
		ScholarSlug:            h.ScholarSlug(),
		MediaType:              h.MediaType(),
		ReadTime:               h.ReadTime(),
		ThumbnailURL:           h.ThumbnailURL(),
		AudioURL:               h.AudioURL(),
		VideoURL:               h.VideoURL(),
		Duration:               h.Duration(),
		Kind:                   h.Kind(),
		LessonCount:            h.LessonCount(),
		URL:                    h.URL(),
	}
}

// splitList flattens repeated and comma-separated values. Scholar names may
// contain commas and are never split.
func splitList(p *[]string) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, v := range *p {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
