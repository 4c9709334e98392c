package minbar

import (
	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
)

// MixedKey is the group holding relevance-ranked hits of Client.Search.
const MixedKey = result.MixedKey

// Hit is one document of a search answer.
type Hit struct {
	ID                     string
	ContentType            string
	Slug                   string
	Title                  string
	HighlightedTitle       string
	Description            string
	HighlightedDescription string
	ScholarName            string
	ScholarSlug            string
	MediaType              string
	ReadTime               int
	ThumbnailURL           string
	AudioURL               string
	VideoURL               string
	Duration               int
	Kind                   string
	LessonCount            int
	URL                    string
	// Document is the raw stored document.
	Document map[string]any
}

// FacetCount is one facet value with its document count.
type FacetCount struct {
	Value string
	Count int
}

// Result is a search answer. Groups are keyed by collection plural key
// ("books", "lectures") or MixedKey.
type Result struct {
	Groups     map[string][]Hit
	Facets     map[string][]FacetCount
	TotalFound int
	Page       int
	PerPage    int
	TotalPages int
}

// Empty reports whether nothing was found.
func (r Result) Empty() bool {
	if r.TotalFound != 0 {
		return false
	}
	for _, hits := range r.Groups {
		if len(hits) > 0 {
			return false
		}
	}
	return true
}

// PopularQuery is one entry of the popular queries list.
type PopularQuery struct {
	Query string
	Count int64
}

func fromResult(r result.Result) Result {
	groups := make(map[string][]Hit)
	for key, hits := range r.GroupedHits() {
		out := make([]Hit, len(hits))
		for i, h := range hits {
			out[i] = fromHit(h)
		}
		groups[key] = out
	}

	facets := make(map[string][]FacetCount)
	for field, counts := range r.Facets() {
		out := make([]FacetCount, len(counts))
		for i, c := range counts {
			out[i] = FacetCount{Value: c.Value, Count: c.Count}
		}
		facets[field] = out
	}

	return Result{
		Groups:     groups,
		Facets:     facets,
		TotalFound: r.TotalFound(),
		Page:       r.Page(),
		PerPage:    r.PerPage(),
		TotalPages: r.TotalPages(),
	}
}

func fromHit(h hit.Hit) Hit {
	return Hit{
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
		Document:               h.Document(),
	}
}
