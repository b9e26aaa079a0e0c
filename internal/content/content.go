// Package content turns raw article input into the prose the suggestion
// engine analyses and the source document links are inserted into.
package content

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Format identifies how raw input is encoded.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat maps a user-supplied name onto a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported content format %q", s)
	}
}

// DetectFormat guesses the format from a file name's extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}

// Document is parsed article input.
type Document struct {
	Format Format
	// Source is the text links are inserted into: the raw input for text and
	// markdown, the converted markdown for HTML.
	Source string
	// Text is the prose that is chunked and scored.
	Text string
}

// Parser converts raw input into a Document.
type Parser struct {
	md   goldmark.Markdown
	html *converter.Converter
}

// NewParser creates a parser.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		html: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Parse normalises raw according to format.
func (p *Parser) Parse(raw string, format Format) (Document, error) {
	switch format {
	case FormatText, "":
		return Document{Format: FormatText, Source: raw, Text: raw}, nil
	case FormatMarkdown:
		return Document{Format: FormatMarkdown, Source: raw, Text: p.markdownProse(raw)}, nil
	case FormatHTML:
		md, err := p.html.ConvertString(raw)
		if err != nil {
			return Document{}, fmt.Errorf("failed to convert html: %w", err)
		}
		return Document{Format: FormatHTML, Source: md, Text: p.markdownProse(md)}, nil
	default:
		return Document{}, fmt.Errorf("unsupported content format %q", format)
	}
}

// markdownProse walks the markdown AST and returns its readable text, one
// block per line. Headings, paragraphs and table rows without terminal
// punctuation get a period so the chunker sees them as sentences. Code blocks,
// images and link destinations are dropped.
func (p *Parser) markdownProse(src string) string {
	source := []byte(src)
	doc := p.md.Parser().Parse(text.NewReader(source))

	var out strings.Builder
	emit := func(s string) {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(terminate(s))
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			emit(inlineText(n, source))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}

		// Table rows read as "cell | cell".
		if k := n.Kind(); k == extast.KindTableRow || k == extast.KindTableHeader {
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if cell := strings.TrimSpace(inlineText(c, source)); cell != "" {
					cells = append(cells, cell)
				}
			}
			emit(strings.Join(cells, " | "))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return out.String()
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.Image, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func terminate(s string) string {
	switch r, _ := utf8.DecodeLastRuneInString(s); r {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
