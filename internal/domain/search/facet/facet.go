package facet

import (
	"cmp"
	"slices"
)

// Count is one facet value with its document count.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Block is the breakdown of one facet field from a single query result.
type Block struct {
	Field  string
	Counts []Count
}

// Extract turns the facet blocks of one result into a per-field map, each
// list sorted by count descending.
func Extract(blocks []Block) map[string][]Count {
	out := make(map[string][]Count, len(blocks))
	for _, b := range blocks {
		counts := append([]Count(nil), b.Counts...)
		sortCounts(counts)
		out[b.Field] = counts
	}
	return out
}

// sortCounts orders by count descending, then value ascending so equal
// counts come out in a stable order.
func sortCounts(counts []Count) {
	slices.SortFunc(counts, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
}
