package typesense

// SearchParams is one sub-query of a multi-search request.
type SearchParams struct {
	Collection     string
	QueryBy        string
	FacetBy        string
	FilterBy       string
	PerPage        *int
	MaxFacetValues int
}

// CommonParams are sent once as URL parameters and apply to every sub-query
// that does not override them.
type CommonParams struct {
	Q                   string
	SortBy              string
	Page                int
	PerPage             *int
	HighlightFullFields string
	MaxFacetValues      int
}

// Int returns a pointer to n. PerPage fields need it because zero is meaningful.
func Int(n int) *int { return &n }

// MultiSearchResponse is the answer to a non-union multi-search: one result per
// sub-query, in submission order.
type MultiSearchResponse struct {
	Results []SearchResponse
}

// SearchResponse is a single search result. A sub-query rejected by the
// server carries Error and Code instead of hits.
type SearchResponse struct {
	Found       int
	Hits        []Hit
	FacetCounts []FacetCounts
	Error       string
	Code        int
}

// Failed reports whether the server rejected this sub-query.
func (r SearchResponse) Failed() bool { return r.Error != "" }

// Hit is one matched document.
type Hit struct {
	Document   map[string]any
	Highlights []Highlight
}

// Highlight is a matched-field snippet.
type Highlight struct {
	Field   string
	Snippet string
}

// FacetCounts is the value breakdown of one facet field.
type FacetCounts struct {
	FieldName string
	Counts    []FacetValue
}

// FacetValue is one facet value with the number of matching documents.
type FacetValue struct {
	Value string
	Count int
}
