package facet

import (
	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	"github.com/minbar-platform/minbar-search/internal/domain/search/query"
)

// Source is the facet output of one tagged sub-query.
type Source struct {
	Tag    query.Tag
	Blocks []Block
}

// MergeOptions describe the filters active for the request being merged.
type MergeOptions struct {
	// Selected holds the collections chosen by content type. Nil selects all.
	Selected             collection.Set
	ScholarsFiltered     bool
	ContentTypesFiltered bool
	SelectedScholars     []string
}

// Merger folds per-collection facet counts into one cross-collection map.
//
// The scholar facet is disjunctive: when scholars are filtered, counts for
// the selected scholars come from the filtered main queries of selected
// collections, and counts for every other scholar come from the unfiltered
// extra queries. The two are never summed for the same value.
type Merger struct {
	opts     MergeOptions
	scholars map[string]struct{}
}

// NewMerger creates a Merger for one request.
func NewMerger(opts MergeOptions) *Merger {
	scholars := make(map[string]struct{}, len(opts.SelectedScholars))
	for _, s := range opts.SelectedScholars {
		scholars[s] = struct{}{}
	}
	return &Merger{opts: opts, scholars: scholars}
}

// Merge sums the counts of every included (field, value) pair across sources
// and returns each field's counts sorted by count descending.
func (m *Merger) Merge(sources []Source) map[string][]Count {
	totals := make(map[string]map[string]int)

	for _, src := range sources {
		extra := src.Tag.IsExtra()
		selected := !extra && m.isSelected(src.Tag.Collection)
		for _, block := range src.Blocks {
			for _, c := range block.Counts {
				if !m.include(block.Field, extra, selected, c.Value) {
					continue
				}
				byValue, ok := totals[block.Field]
				if !ok {
					byValue = make(map[string]int)
					totals[block.Field] = byValue
				}
				byValue[c.Value] += c.Count
			}
		}
	}

	out := make(map[string][]Count, len(totals))
	for field, byValue := range totals {
		counts := make([]Count, 0, len(byValue))
		for v, n := range byValue {
			counts = append(counts, Count{Value: v, Count: n})
		}
		sortCounts(counts)
		out[field] = counts
	}
	return out
}

func (m *Merger) include(field string, extra, selected bool, value string) bool {
	if field != collection.ScholarFacetField {
		return true
	}
	switch {
	case m.opts.ScholarsFiltered:
		if _, chosen := m.scholars[value]; chosen {
			return !extra && selected
		}
		return extra
	case m.opts.ContentTypesFiltered:
		return selected
	default:
		return true
	}
}

func (m *Merger) isSelected(k collection.Kind) bool {
	if m.opts.Selected == nil {
		return true
	}
	return m.opts.Selected.Has(k)
}
