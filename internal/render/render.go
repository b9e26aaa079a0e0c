// Package render assembles reviewed suggestions into a linked document and
// renders it for preview.
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// Relevance labels.
const (
	RelevanceHigh   = "High"
	RelevanceMedium = "Medium"
	RelevanceLow    = "Low"
)

// RelevanceLabel buckets a suggestion score for display.
func RelevanceLabel(score float64) string {
	switch {
	case score >= 0.6:
		return RelevanceHigh
	case score >= 0.4:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// LinkDocument inserts an anchor element for each accepted suggestion, in
// order, at the first occurrence of its anchor text. Occurrences inside a
// link inserted earlier are skipped. Suggestions whose anchor text does not
// occur are left out.
func LinkDocument(source string, accepted []suggest.Suggestion) string {
	doc := source
	// Byte ranges of inserted links, kept sorted by start.
	var linked [][2]int

	for _, sg := range accepted {
		anchor := sg.AnchorText
		if anchor == "" {
			continue
		}
		pos := firstFree(doc, anchor, linked)
		if pos < 0 {
			continue
		}

		link := `<a href="` + html.EscapeString(sg.DestinationURL) + `">` + anchor + `</a>`
		doc = doc[:pos] + link + doc[pos+len(anchor):]

		shift := len(link) - len(anchor)
		for i := range linked {
			if linked[i][0] >= pos {
				linked[i][0] += shift
				linked[i][1] += shift
			}
		}
		linked = append(linked, [2]int{pos, pos + len(link)})
		sort.Slice(linked, func(i, j int) bool { return linked[i][0] < linked[j][0] })
	}
	return doc
}

// firstFree returns the first index of needle in doc that does not overlap
// any range in linked, or -1.
func firstFree(doc, needle string, linked [][2]int) int {
	from := 0
	for from <= len(doc) {
		i := strings.Index(doc[from:], needle)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(needle)
		overlap := false
		for _, r := range linked {
			if start < r[1] && end > r[0] {
				overlap = true
				from = r[1]
				break
			}
		}
		if !overlap {
			return start
		}
	}
	return -1
}

// Renderer turns a linked document into sanitised HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	page   *template.Template
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				// Inserted anchors are raw HTML; the sanitiser below cleans up.
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		policy: bluemonday.UGCPolicy(),
		page:   template.Must(template.New("preview").Parse(previewTemplate)),
	}
}

// Preview renders the document as markdown and sanitises the result.
func (r *Renderer) Preview(doc string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(doc), &buf); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// PreviewPage is the data for a full preview page.
type PreviewPage struct {
	Title    string
	Accepted int
	Total    int
	Content  template.HTML
}

// WritePage renders doc inside a standalone HTML page.
func (r *Renderer) WritePage(w io.Writer, title string, doc string, accepted, total int) error {
	body, err := r.Preview(doc)
	if err != nil {
		return err
	}
	data := PreviewPage{Title: title, Accepted: accepted, Total: total, Content: body}
	if err := r.page.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute preview template: %w", err)
	}
	return nil
}

const previewTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 860px;
      line-height: 1.7;
      color: #1f2937;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e5e7eb;
      padding-bottom: 1rem;
    }
    .meta {
      color: #6b7280;
      font-size: 0.95rem;
    }
    article a {
      color: #1d4ed8;
      background: #eff6ff;
      border-radius: 4px;
      padding: 0 2px;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Accepted}} of {{.Total}} suggested links applied</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`
