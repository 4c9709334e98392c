package query

import (
	"fmt"

	"github.com/minbar-platform/minbar-search/internal/domain/collection"
)

// Paging limits.
const (
	DefaultPerPage = 12
	MaxPerPage     = 51
	BrowsePerPage  = 6
	MaxFacetValues = 999
)

// Sort orders understood by the document store.
const (
	SortByRelevance = "_text_match:desc"
	SortByRecent    = "created_at_ts:desc"
	Wildcard        = "*"
)

// HighlightFields are returned in full for every text query.
const HighlightFields = "title,description,name,content_text"

// Purpose says why a sub-query was issued.
type Purpose int

const (
	// Main is the primary per-collection query (hits and most facets).
	Main Purpose = iota
	// ExtraScholarFacet is a zero-hit query computing disjunctive scholar counts.
	ExtraScholarFacet
)

// String implements fmt.Stringer.
func (p Purpose) String() string {
	switch p {
	case Main:
		return "main"
	case ExtraScholarFacet:
		return "extra_scholar_facet"
	default:
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
}

// Tag identifies one sub-query of a multi-search request.
type Tag struct {
	Purpose    Purpose
	Collection collection.Kind
}

// IsExtra reports whether the tag marks a disjunctive scholar query.
func (t Tag) IsExtra() bool { return t.Purpose == ExtraScholarFacet }

// Paging is a clamped page/per-page pair.
type Paging struct {
	page    int
	perPage int
}

// NewPaging clamps page to >= 1 and perPage to [1, maxPerPage]. A nil perPage
// selects defaultPerPage.
func NewPaging(page int, perPage *int, defaultPerPage, maxPerPage int) Paging {
	if maxPerPage < 1 {
		maxPerPage = MaxPerPage
	}
	pp := defaultPerPage
	if perPage != nil {
		pp = *perPage
	}
	if pp < 1 {
		pp = 1
	}
	if pp > maxPerPage {
		pp = maxPerPage
	}
	if page < 1 {
		page = 1
	}
	return Paging{page: page, perPage: pp}
}

// Page returns the 1-based page number.
func (p Paging) Page() int { return p.page }

// PerPage returns the page size.
func (p Paging) PerPage() int { return p.perPage }

// TextOrWildcard returns q, or the wildcard when q is blank.
func TextOrWildcard(q string) string {
	if q == "" {
		return Wildcard
	}
	return q
}

// SortFor returns relevance ordering for real queries and recency otherwise.
func SortFor(q string) string {
	if q == "" || q == Wildcard {
		return SortByRecent
	}
	return SortByRelevance
}
