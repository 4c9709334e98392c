package hit

import (
	"maps"
	"math"
	"strconv"
	"strings"
)

// Highlight is a matched snippet for one document field.
type Highlight struct {
	Field   string
	Snippet string
}

// Hit is a read-only view over one raw search hit. Accessors never mutate the
// underlying document and return zero values for missing or mistyped fields.
type Hit struct {
	document    map[string]any
	highlights  []Highlight
	contentType string
}

// New wraps a raw hit tagged with the content type it was found under.
// A nil document is treated as empty.
func New(document map[string]any, highlights []Highlight, contentType string) Hit {
	if document == nil {
		document = map[string]any{}
	}
	return Hit{document: document, highlights: highlights, contentType: contentType}
}

// ContentType returns the tag the hit was wrapped with.
func (h Hit) ContentType() string { return h.contentType }

// Document returns a shallow copy of the raw document.
func (h Hit) Document() map[string]any { return maps.Clone(h.document) }

// ID returns the document id.
func (h Hit) ID() string { return h.str("id") }

// Slug returns the document slug.
func (h Hit) Slug() string { return h.str("slug") }

// Title returns the title, falling back to name.
func (h Hit) Title() string { return h.firstStr("title", "name") }

// Description returns the description, falling back to content_text.
func (h Hit) Description() string { return h.firstStr("description", "content_text") }

// ScholarName returns the scholar display name.
func (h Hit) ScholarName() string { return h.str("scholar_name") }

// ScholarSlug returns the scholar slug.
func (h Hit) ScholarSlug() string { return h.str("scholar_slug") }

// MediaType returns the media type (audio, video, text ...).
func (h Hit) MediaType() string { return h.str("media_type") }

// ReadTime returns the estimated reading time in minutes.
func (h Hit) ReadTime() int { return h.integer("read_time") }

// ThumbnailURL returns the thumbnail location.
func (h Hit) ThumbnailURL() string { return h.str("thumbnail_url") }

// AudioURL returns the audio location.
func (h Hit) AudioURL() string { return h.str("audio_url") }

// VideoURL returns the video location.
func (h Hit) VideoURL() string { return h.str("video_url") }

// Duration returns the media duration in seconds.
func (h Hit) Duration() int { return h.integer("duration") }

// Kind returns the collection-specific sub-kind.
func (h Hit) Kind() string { return h.str("kind") }

// LessonCount returns the number of lessons in a series.
func (h Hit) LessonCount() int { return h.integer("lesson_count") }

// URL returns the canonical document location.
func (h Hit) URL() string { return h.str("url") }

// HighlightedTitle returns the title snippet, then the name snippet, then the plain title.
func (h Hit) HighlightedTitle() string {
	if s, ok := h.snippet("title"); ok {
		return s
	}
	if s, ok := h.snippet("name"); ok {
		return s
	}
	return h.Title()
}

// HighlightedDescription returns the description snippet, then the
// content_text snippet, then the plain description.
func (h Hit) HighlightedDescription() string {
	if s, ok := h.snippet("description"); ok {
		return s
	}
	if s, ok := h.snippet("content_text"); ok {
		return s
	}
	return h.Description()
}

// snippet returns the snippet of the first highlight for field. ok is false
// only when no highlight names the field.
func (h Hit) snippet(field string) (string, bool) {
	for _, hl := range h.highlights {
		if hl.Field == field {
			return hl.Snippet, true
		}
	}
	return "", false
}

func (h Hit) firstStr(keys ...string) string {
	for _, k := range keys {
		if v := h.str(k); v != "" {
			return v
		}
	}
	return ""
}

func (h Hit) str(key string) string {
	switch v := h.document[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (h Hit) integer(key string) int {
	switch v := h.document[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
