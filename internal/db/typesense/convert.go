package typesense

import (
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

// toAPI leaves unset fields nil so the server applies its own defaults.
func (p CommonParams) toAPI() *api.MultiSearchParams {
	out := &api.MultiSearchParams{PerPage: p.PerPage}
	if p.Q != "" {
		out.Q = pointer.String(p.Q)
	}
	if p.SortBy != "" {
		out.SortBy = pointer.String(p.SortBy)
	}
	if p.Page > 0 {
		out.Page = pointer.Int(p.Page)
	}
	if p.HighlightFullFields != "" {
		out.HighlightFullFields = pointer.String(p.HighlightFullFields)
	}
	if p.MaxFacetValues > 0 {
		out.MaxFacetValues = pointer.Int(p.MaxFacetValues)
	}
	return out
}

func toAPISearches(searches []SearchParams) []api.MultiSearchCollectionParameters {
	out := make([]api.MultiSearchCollectionParameters, len(searches))
	for i, s := range searches {
		p := api.MultiSearchCollectionParameters{
			Collection: pointer.String(s.Collection),
			PerPage:    s.PerPage,
		}
		if s.QueryBy != "" {
			p.QueryBy = pointer.String(s.QueryBy)
		}
		if s.FacetBy != "" {
			p.FacetBy = pointer.String(s.FacetBy)
		}
		if s.FilterBy != "" {
			p.FilterBy = pointer.String(s.FilterBy)
		}
		if s.MaxFacetValues > 0 {
			p.MaxFacetValues = pointer.Int(s.MaxFacetValues)
		}
		out[i] = p
	}
	return out
}

// fromAPI takes the shared fields of the SDK's result types, which differ
// between a multi-search item and a plain search result.
func fromAPI(found *int, hits *[]api.SearchResultHit, facets *[]api.FacetCounts) SearchResponse {
	out := SearchResponse{Found: deref(found)}

	if hits != nil {
		out.Hits = make([]Hit, 0, len(*hits))
		for _, h := range *hits {
			hit := Hit{}
			if h.Document != nil {
				hit.Document = *h.Document
			}
			if h.Highlights != nil {
				for _, hl := range *h.Highlights {
					hit.Highlights = append(hit.Highlights, Highlight{
						Field:   deref(hl.Field),
						Snippet: deref(hl.Snippet),
					})
				}
			}
			out.Hits = append(out.Hits, hit)
		}
	}

	if facets != nil {
		for _, f := range *facets {
			fc := FacetCounts{FieldName: deref(f.FieldName)}
			if f.Counts != nil {
				for _, c := range *f.Counts {
					fc.Counts = append(fc.Counts, FacetValue{Value: deref(c.Value), Count: deref(c.Count)})
				}
			}
			out.FacetCounts = append(out.FacetCounts, fc)
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
