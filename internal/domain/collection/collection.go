package collection

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/minbar-platform/minbar-search/internal/domain"
)

// Kind identifies one registered document collection.
type Kind int

// Registered collections, in registry order. Multi-search requests list main
// queries in this order.
const (
	News Kind = iota
	Fatwa
	Lecture
	Series
	Article
	Book
)

// CommonFacetFields are requested from every collection.
var CommonFacetFields = []string{"content_type", "scholar_name", "media_type"}

// ScholarFacetField is the facet that gets disjunctive counts.
const ScholarFacetField = "scholar_name"

type entry struct {
	name         string
	pluralKey    string
	searchFields []string
}

var registry = [...]entry{
	News: {
		name:         "News",
		pluralKey:    "news",
		searchFields: []string{"title", "description", "content_text"},
	},
	Fatwa: {
		name:         "Fatwa",
		pluralKey:    "fatwas",
		searchFields: []string{"title", "content_text", "scholar_name"},
	},
	Lecture: {
		name:         "Lecture",
		pluralKey:    "lectures",
		searchFields: []string{"title", "description", "scholar_name"},
	},
	Series: {
		name:         "Series",
		pluralKey:    "series",
		searchFields: []string{"title", "description", "scholar_name"},
	},
	Article: {
		name:         "Article",
		pluralKey:    "articles",
		searchFields: []string{"title", "content_text", "scholar_name"},
	},
	Book: {
		name:         "Book",
		pluralKey:    "books",
		searchFields: []string{"name", "title", "description", "scholar_name"},
	},
}

// All returns every registered collection in registry order.
func All() []Kind {
	kinds := make([]Kind, len(registry))
	for i := range registry {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Count returns the number of registered collections.
func Count() int { return len(registry) }

// Parse resolves a collection by display name (any case) or plural key.
func Parse(name string) (Kind, error) {
	trimmed := strings.TrimSpace(name)
	// Casers carry state and are not shared between goroutines.
	normalized := cases.Title(language.Und).String(strings.ToLower(trimmed))
	lower := strings.ToLower(trimmed)
	for i, e := range registry {
		if e.name == normalized || e.pluralKey == lower {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, name)
}

// FromContentType resolves the collection whose documents carry the given
// content_type value (the lower-cased collection name).
func FromContentType(contentType string) (Kind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for i, e := range registry {
		if strings.ToLower(e.name) == ct {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsValid reports whether k is a registered collection.
func (k Kind) IsValid() bool { return k >= 0 && int(k) < len(registry) }

// Name returns the document-store collection name.
func (k Kind) Name() string { return registry[k].name }

// String implements fmt.Stringer.
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return k.Name()
}

// PluralKey returns the key used to group hits of this collection.
func (k Kind) PluralKey() string { return registry[k].pluralKey }

// ContentType returns the lower-cased name used to tag hits and filter documents.
func (k Kind) ContentType() string { return strings.ToLower(registry[k].name) }

// SearchFields returns the fields searched for this collection.
func (k Kind) SearchFields() []string {
	return append([]string(nil), registry[k].searchFields...)
}

// QueryBy returns the comma-separated searchable field list.
func (k Kind) QueryBy() string { return strings.Join(registry[k].searchFields, ",") }

// FacetBy returns the comma-separated common facet field list.
func FacetBy() string { return strings.Join(CommonFacetFields, ",") }

// Set is a set of collections.
type Set map[Kind]struct{}

// NewSet creates a set containing kinds.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Ordered returns the members of s in registry order.
func (s Set) Ordered() []Kind {
	out := make([]Kind, 0, len(s))
	for _, k := range All() {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Select resolves content-type names into a collection set. An empty input
// selects every collection; names outside the registry are ignored.
func Select(contentTypes []string) Set {
	s := make(Set, len(contentTypes))
	requested := 0
	for _, ct := range contentTypes {
		if strings.TrimSpace(ct) == "" {
			continue
		}
		requested++
		if k, ok := FromContentType(ct); ok {
			s[k] = struct{}{}
		}
	}
	if requested == 0 {
		return NewSet(All()...)
	}
	return s
}
