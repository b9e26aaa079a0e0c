package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_suggest_service.go -package=mocks -mock_names=SuggestService=MockSuggestService github.com/gtmaihackathon/internal-link-suggester/internal/service SuggestService

import (
	"context"
	"fmt"
	"strings"

	"github.com/gtmaihackathon/internal-link-suggester/internal/content"
	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// Reasons an analysis returned no suggestions.
const (
	ReasonEmptyContent = "empty_content"
	ReasonEmptyCatalog = "empty_catalog"
	ReasonNoMatches    = "no_matches"
)

// Generator produces ranked link suggestions for content.
// This interface is defined from the service layer's perspective (consumer-first).
type Generator interface {
	Generate(ctx context.Context, content string, snapshot suggest.Snapshot, limit int) []suggest.Suggestion
}

// AnalyzeRequest asks for link suggestions for one document.
type AnalyzeRequest struct {
	Content string
	// Format is text, markdown or html. Empty means text.
	Format string
	// Limit caps the number of suggestions. Zero means the configured default.
	Limit int
}

// AnalyzeResponse carries the suggestions for one document.
type AnalyzeResponse struct {
	Document    content.Document
	Suggestions []suggest.Suggestion
	// Reason explains an empty Suggestions list.
	Reason string
}

// SuggestService analyses content against the catalog.
type SuggestService interface {
	// Analyze returns ranked suggestions. Empty input or an empty catalog
	// yields an empty list with a Reason, not an error.
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
}

// suggestService implements SuggestService.
type suggestService struct {
	catalog      storage.DestinationStore
	generator    Generator
	parser       *content.Parser
	defaultLimit int
	maxLimit     int
}

// NewSuggestService creates a new SuggestService.
func NewSuggestService(catalog storage.DestinationStore, generator Generator, defaultLimit, maxLimit int) SuggestService {
	return &suggestService{
		catalog:      catalog,
		generator:    generator,
		parser:       content.NewParser(),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Analyze parses the content, snapshots the catalog and runs the generator.
func (s *suggestService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 1 || limit > s.maxLimit {
		return AnalyzeResponse{}, &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between 1 and %d", s.maxLimit),
		}
	}

	format, err := content.ParseFormat(req.Format)
	if err != nil {
		return AnalyzeResponse{}, &ValidationError{Field: "format", Message: err.Error()}
	}

	doc, err := s.parser.Parse(req.Content, format)
	if err != nil {
		return AnalyzeResponse{}, &ValidationError{Field: "content", Message: err.Error()}
	}

	resp := AnalyzeResponse{Document: doc, Suggestions: []suggest.Suggestion{}}
	if strings.TrimSpace(doc.Text) == "" {
		resp.Reason = ReasonEmptyContent
		return resp, nil
	}

	records, err := s.catalog.GetAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load catalog", "error", err)
		return AnalyzeResponse{}, WrapError(err, "failed to load catalog")
	}
	if len(records) == 0 {
		resp.Reason = ReasonEmptyCatalog
		return resp, nil
	}

	resp.Suggestions = s.generator.Generate(ctx, doc.Text, storage.ToSnapshot(records), limit)
	if len(resp.Suggestions) == 0 {
		resp.Reason = ReasonNoMatches
	}

	logger.InfoContext(ctx, "content analysed",
		"format", doc.Format,
		"content_length", len(doc.Text),
		"destinations", len(records),
		"suggestions", len(resp.Suggestions),
	)
	return resp, nil
}
