package filter

import "strings"

// Field names used in filter expressions.
const (
	DomainField      = "domain_ids"
	ScholarField     = "scholar_name"
	ContentTypeField = "content_type"
)

const clauseSeparator = " && "

// Builder translates domain, scholar and content-type selections into the
// document store's filter_by syntax.
type Builder struct {
	domainID     string
	scholars     []string
	contentTypes []string
}

// New creates a Builder. Scholars and content types are sanitized once here
// so the filter and facet selection see the same values. Blank ones are
// dropped, content types are lower-cased.
func New(domainID string, scholars, contentTypes []string) Builder {
	b := Builder{domainID: strings.TrimSpace(domainID)}
	for _, s := range scholars {
		s = Sanitize(s)
		if strings.TrimSpace(s) != "" {
			b.scholars = append(b.scholars, s)
		}
	}
	for _, ct := range contentTypes {
		ct = strings.ToLower(strings.TrimSpace(Sanitize(ct)))
		if ct != "" {
			b.contentTypes = append(b.contentTypes, ct)
		}
	}
	return b
}

// Build returns the domain clause followed by the scholar clause, joined with
// " && ". Returns "" when neither applies.
func (b Builder) Build() string {
	var clauses []string
	if c := b.domainClause(); c != "" {
		clauses = append(clauses, c)
	}
	if len(b.scholars) > 0 {
		clauses = append(clauses, membership(ScholarField, b.scholars))
	}
	return strings.Join(clauses, clauseSeparator)
}

// WithoutScholars returns the domain clause followed by the content-type
// clause. The scholar clause is never included, so facet counts computed with
// this filter stay disjunctive over scholars.
func (b Builder) WithoutScholars() string {
	var clauses []string
	if c := b.domainClause(); c != "" {
		clauses = append(clauses, c)
	}
	if len(b.contentTypes) > 0 {
		clauses = append(clauses, membership(ContentTypeField, b.contentTypes))
	}
	return strings.Join(clauses, clauseSeparator)
}

// DomainID returns the trimmed domain id, "" when absent.
func (b Builder) DomainID() string { return b.domainID }

// HasScholars reports whether a scholar filter is active.
func (b Builder) HasScholars() bool { return len(b.scholars) > 0 }

// HasContentTypes reports whether a content-type filter is active.
func (b Builder) HasContentTypes() bool { return len(b.contentTypes) > 0 }

// Scholars returns the active scholar names as sent in the filter.
func (b Builder) Scholars() []string { return append([]string(nil), b.scholars...) }

// ContentTypes returns the active lower-cased content types.
func (b Builder) ContentTypes() []string { return append([]string(nil), b.contentTypes...) }

func (b Builder) domainClause() string {
	if b.domainID == "" {
		return ""
	}
	return DomainField + ":=[" + Sanitize(b.domainID) + "]"
}

func membership(field string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + Sanitize(v) + "`"
	}
	return field + ":=[" + strings.Join(quoted, ",") + "]"
}

// Sanitize strips backticks so a value cannot escape its quoting.
func Sanitize(value string) string {
	return strings.ReplaceAll(value, "`", "")
}
