package suggest

import (
	"sort"
	"strings"
	"time"
)

// Category classifies a destination page by content type.
type Category string

const (
	CategoryBlog     Category = "Blog"
	CategoryProduct  Category = "Product"
	CategoryGuide    Category = "Guide"
	CategoryGlossary Category = "Glossary"
	CategoryCategory Category = "Category"
	CategoryLanding  Category = "Landing"
	CategoryOther    Category = "Other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryBlog,
	CategoryProduct,
	CategoryGuide,
	CategoryGlossary,
	CategoryCategory,
	CategoryLanding,
	CategoryOther,
}

// ParseCategory maps a free-form string onto a known category (case-insensitive).
// The second return value is false when the input names no known category.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return CategoryOther, false
}

// Destination is a candidate link target with its descriptive metadata.
type Destination struct {
	URL            string    `json:"url"`
	Title          string    `json:"title"`
	PrimaryHeading string    `json:"primary_heading"`
	SubHeadings    []string  `json:"sub_headings,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	Category       Category  `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}

// DescriptiveText returns the combined text a destination is scored against:
// "title. primary_heading. summary. sub headings joined by spaces".
func (d Destination) DescriptiveText() string {
	return d.Title + ". " + d.PrimaryHeading + ". " + d.Summary + ". " + strings.Join(d.SubHeadings, " ")
}

// Snapshot is a read-only view of the catalog keyed by URL.
// It is handed to the generator per call and never mutated by it.
type Snapshot map[string]Destination

// URLs returns the snapshot keys in lexical order.
func (s Snapshot) URLs() []string {
	urls := make([]string, 0, len(s))
	for url := range s {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Chunk is a sentence-aligned window of the analysed content.
type Chunk struct {
	Text string `json:"text"`
	// StartOffset is the byte offset of the chunk's first sentence in the content.
	// Best effort: a sentence that also occurs earlier in the content may resolve
	// to the wrong occurrence.
	StartOffset int `json:"start_offset"`
}

// Suggestion is one recommended link from a chunk of content to a destination.
type Suggestion struct {
	DestinationURL string   `json:"url"`
	AnchorText     string   `json:"anchor_text"`
	ContextSnippet string   `json:"context"`
	Score          float64  `json:"score"`
	SourcePosition int      `json:"position"`
	TargetTitle    string   `json:"target_title"`
	TargetHeading  string   `json:"target_h1"`
	Category       Category `json:"category"`
}
