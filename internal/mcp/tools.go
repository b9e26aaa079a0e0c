package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// SuggestInput is the input schema for the suggest_links tool.
type SuggestInput struct {
	Content string `json:"content" jsonschema:"the article text to find internal links for"`
	Format  string `json:"format,omitempty" jsonschema:"text, markdown or html (default text)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default from server config)"`
}

// SuggestOutput is the output schema for the suggest_links tool.
type SuggestOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
	Count       int                `json:"count"`
	Reason      string             `json:"reason,omitempty"`
}

// SuggestionOutput is one suggested link.
type SuggestionOutput struct {
	URL        string  `json:"url"`
	AnchorText string  `json:"anchor_text"`
	Context    string  `json:"context"`
	Score      float64 `json:"score"`
	Relevance  string  `json:"relevance"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
}

// LinkInput is the input schema for the link_document tool.
type LinkInput struct {
	Content string   `json:"content" jsonschema:"the article text to insert links into"`
	Format  string   `json:"format,omitempty" jsonschema:"text, markdown or html (default text)"`
	URLs    []string `json:"urls,omitempty" jsonschema:"destination URLs to link; empty links every suggestion"`
}

// LinkOutput is the output schema for the link_document tool.
type LinkOutput struct {
	Document string   `json:"document"`
	Linked   []string `json:"linked"`
}

// DestinationsInput is the (empty) input schema for list_destinations.
type DestinationsInput struct{}

// DestinationsOutput lists the catalog.
type DestinationsOutput struct {
	Destinations []DestinationOutput `json:"destinations"`
	Count        int                 `json:"count"`
}

// DestinationOutput is one catalog entry.
type DestinationOutput struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	H1       string `json:"h1"`
	Category string `json:"category"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_links",
		Description: "Suggest internal links for a piece of content from the destination catalog",
	}, s.handleSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "link_document",
		Description: "Return the content with suggested internal links inserted as HTML anchors",
	}, s.handleLink)

	if s.ports.Catalog != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_destinations",
			Description: "List the destination pages links can point to",
		}, s.handleListDestinations)
	}
}

func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	resp, err := s.ports.Suggest.Analyze(ctx, service.AnalyzeRequest{
		Content: input.Content,
		Format:  input.Format,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	output := SuggestOutput{
		Suggestions: make([]SuggestionOutput, len(resp.Suggestions)),
		Count:       len(resp.Suggestions),
		Reason:      resp.Reason,
	}
	for i, sg := range resp.Suggestions {
		output.Suggestions[i] = SuggestionOutput{
			URL:        sg.DestinationURL,
			AnchorText: sg.AnchorText,
			Context:    sg.ContextSnippet,
			Score:      sg.Score,
			Relevance:  render.RelevanceLabel(sg.Score),
			Title:      sg.TargetTitle,
			Category:   string(sg.Category),
		}
	}
	return nil, output, nil
}

func (s *Server) handleLink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LinkInput,
) (*mcp.CallToolResult, LinkOutput, error) {
	resp, err := s.ports.Suggest.Analyze(ctx, service.AnalyzeRequest{
		Content: input.Content,
		Format:  input.Format,
	})
	if err != nil {
		return nil, LinkOutput{}, err
	}

	accepted := selectURLs(resp.Suggestions, input.URLs)
	output := LinkOutput{
		Document: render.LinkDocument(resp.Document.Source, accepted),
		Linked:   make([]string, 0, len(accepted)),
	}
	for _, sg := range accepted {
		output.Linked = append(output.Linked, sg.DestinationURL)
	}
	return nil, output, nil
}

// selectURLs keeps the suggestions whose destination is in urls, in
// suggestion order. An empty urls keeps everything.
func selectURLs(suggestions []suggest.Suggestion, urls []string) []suggest.Suggestion {
	if len(urls) == 0 {
		return suggestions
	}
	want := make(map[string]bool, len(urls))
	for _, u := range urls {
		want[u] = true
	}
	out := make([]suggest.Suggestion, 0, len(urls))
	for _, sg := range suggestions {
		if want[sg.DestinationURL] {
			out = append(out, sg)
		}
	}
	return out
}

func (s *Server) handleListDestinations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ DestinationsInput,
) (*mcp.CallToolResult, DestinationsOutput, error) {
	recs, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, DestinationsOutput{}, err
	}
	output := DestinationsOutput{
		Destinations: make([]DestinationOutput, len(recs)),
		Count:        len(recs),
	}
	for i, rec := range recs {
		output.Destinations[i] = DestinationOutput{
			URL:      rec.URL,
			Title:    rec.Title,
			H1:       rec.H1,
			Category: rec.Category,
		}
	}
	return nil, output, nil
}
