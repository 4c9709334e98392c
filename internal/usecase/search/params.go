package search

import "github.com/minbar-platform/minbar-search/internal/domain/search/query"

// Params are the caller's search inputs. Page and PerPage are clamped before
// any store call; a nil PerPage selects the service default.
type Params struct {
	Query        string
	DomainID     string
	ContentTypes []string
	Scholars     []string
	Page         int
	PerPage      *int
}

// Limits bound paging and facet sizes.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
	BrowsePerPage  int
	MaxFacetValues int
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultPerPage: query.DefaultPerPage,
		MaxPerPage:     query.MaxPerPage,
		BrowsePerPage:  query.BrowsePerPage,
		MaxFacetValues: query.MaxFacetValues,
	}
}

// merge overrides the receiver with every positive field of o.
func (l Limits) merge(o Limits) Limits {
	if o.DefaultPerPage > 0 {
		l.DefaultPerPage = o.DefaultPerPage
	}
	if o.MaxPerPage > 0 {
		l.MaxPerPage = o.MaxPerPage
	}
	if o.BrowsePerPage > 0 {
		l.BrowsePerPage = o.BrowsePerPage
	}
	if o.MaxFacetValues > 0 {
		l.MaxFacetValues = o.MaxFacetValues
	}
	return l
}
